package sdk_test

import (
	"context"
	"fmt"
	"log"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/sdk"
)

func ExampleConsole_quickstart() {
	ctx := context.Background()
	con := sdk.New(sdk.Config{APIURL: "https://oficina.example/api"})

	if err := con.Clientes.Load(ctx, 1); err != nil {
		log.Fatal(err)
	}
	st := con.Clientes.State()
	for _, row := range st.Rows {
		for _, col := range st.Columns {
			fmt.Print(cfg.FormatCell(row.Data[col.Key]), "\t")
		}
		fmt.Println()
	}

	con.Clientes.OpenCreate()
	con.Clientes.Form().Patch(func(v *entity.ClienteForm) { v.FullName = "Maria das Graças" })
	if err := con.Clientes.SubmitForm(ctx); err != nil {
		log.Println(err)
	}
}
