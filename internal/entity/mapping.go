package entity

import (
	"math"
	"strings"

	"github.com/faciam-dev/atelie/pkg/models"
)

// nullable sends an empty optional text as null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// positiveID keeps an id only when it is a positive number.
func positiveID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}

// stateCode keeps the first two letters of a state, upper-cased.
func stateCode(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func parseTipoCliente(f models.Flex) models.TipoCliente {
	switch {
	case f.Num != nil:
		if *f.Num == float64(models.PessoaJuridica) {
			return models.PessoaJuridica
		}
	case f.Str != nil:
		s := strings.ToLower(*f.Str)
		if s == "1" || s == "pj" {
			return models.PessoaJuridica
		}
	}
	return models.PessoaFisica
}

func parseSituacaoEstoque(f models.Flex) models.SituacaoEstoque {
	switch {
	case f.Num != nil:
		n := *f.Num
		if n == math.Trunc(n) && n >= float64(models.EstoqueDisponivel) && n <= float64(models.EstoqueIndisponivel) {
			return models.SituacaoEstoque(n)
		}
	case f.Str != nil:
		s := strings.ToLower(*f.Str)
		if strings.Contains(s, "demanda") {
			return models.EstoqueSobDemanda
		}
		if strings.Contains(s, "indispon") {
			return models.EstoqueIndisponivel
		}
	}
	return models.EstoqueDisponivel
}

func parseCategoriaStatus(f models.Flex) models.CategoriaStatus {
	switch {
	case f.Num != nil:
		if *f.Num == float64(models.CategoriaInativa) {
			return models.CategoriaInativa
		}
	case f.Str != nil:
		if strings.ToLower(*f.Str) == "inativo" {
			return models.CategoriaInativa
		}
	}
	return models.CategoriaAtiva
}
