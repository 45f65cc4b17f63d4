package cfg

// DefaultPageSize is used when neither the caller nor the directory
// supplies a page size.
const DefaultPageSize = 25

// Direction is the sort direction accepted by the query endpoint.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Summary describes one query registered on the backend.
type Summary struct {
	Identifier       string  `json:"identifier" yaml:"identifier"`
	Description      string  `json:"description" yaml:"description"`
	PrimaryKeyColumn *string `json:"primaryKeyColumn,omitempty" yaml:"primaryKeyColumn,omitempty"`
}

// Field is a backend-declared column of a query result.
type Field struct {
	FieldKey     string  `json:"fieldKey" yaml:"fieldKey"`
	Label        string  `json:"label" yaml:"label"`
	DataType     string  `json:"dataType" yaml:"dataType"`
	DisplayOrder int     `json:"displayOrder" yaml:"displayOrder"`
	AllowFilter  bool    `json:"allowFilter" yaml:"allowFilter"`
	IsEditable   bool    `json:"isEditable" yaml:"isEditable"`
	IsVisible    bool    `json:"isVisible" yaml:"isVisible"`
	QueryColumn  string  `json:"queryColumn" yaml:"queryColumn"`
	Mask         *string `json:"mask,omitempty" yaml:"mask,omitempty"`
	ColumnWidth  int     `json:"columnWidth" yaml:"columnWidth"`
}

// FilterField restricts a query on one field.
type FilterField struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Values   []any  `json:"values,omitempty" yaml:"values,omitempty"`
}

// QueryInput is what callers pass to a query. Every field is optional.
type QueryInput struct {
	Filters          []FilterField
	CodeFilters      []FilterField
	CustomWhere      *string
	Page             int
	PageSize         int
	OrderByField     *string
	OrderByDirection *Direction
}

// QueryRequest is the normalized body sent to POST /cfg/{identifier}/query.
// Unset optional fields are encoded as JSON null.
type QueryRequest struct {
	Filters          []FilterField `json:"filters"`
	CodeFilters      []FilterField `json:"codeFilters"`
	CustomWhere      *string       `json:"customWhere"`
	Page             int           `json:"page"`
	PageSize         int           `json:"pageSize"`
	OrderByField     *string       `json:"orderByField"`
	OrderByDirection *Direction    `json:"orderByDirection"`
}

// Response is the raw body of a query. Data holds a JSON array encoded
// as a string.
type Response struct {
	Data                    string  `json:"data"`
	PrimaryKey              *string `json:"primaryKey"`
	SearchIdentifierColumn  *string `json:"searchIdentifierColumn"`
	SearchDescriptionColumn *string `json:"searchDescriptionColumn"`
	AlternateCodeColumn     *string `json:"alternateCodeColumn"`
	Fields                  []Field `json:"fields"`
}

// Row is one decoded record of a query page.
type Row = map[string]any

// Result is a decoded query page.
type Result struct {
	Data                    []Row   `json:"data"`
	Fields                  []Field `json:"fields"`
	PrimaryKey              *string `json:"primaryKey"`
	SearchIdentifierColumn  *string `json:"searchIdentifierColumn"`
	SearchDescriptionColumn *string `json:"searchDescriptionColumn"`
	AlternateCodeColumn     *string `json:"alternateCodeColumn"`
	// KeyOrder holds each row's keys in enumeration order. It is nil
	// when the rows did not come from Decode.
	KeyOrder [][]string `json:"-"`
}

// Column is a grid column derived from a visible Field.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Width int    `json:"width,omitempty"`
}

// GridRow is a row addressed by its resolved identity.
type GridRow struct {
	ID   string `json:"id"`
	Data Row    `json:"data"`
}
