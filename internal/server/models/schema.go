package models

// Column describes one column of a store table, in the shape MySQL's
// DESCRIBE prints it.
type Column struct {
	Field   string  `json:"Field"`
	Type    string  `json:"Type"`
	Null    string  `json:"Null"`
	Key     string  `json:"Key"`
	Default *string `json:"Default"`
	Extra   string  `json:"Extra"`
}

// TableDescription lists the columns of one table.
type TableDescription struct {
	Table   string   `json:"table"`
	Columns []Column `json:"columns"`
}

// StoreInfo summarises the active persistence backend.
type StoreInfo struct {
	Databases []string `json:"databases"`
	Tables    []string `json:"tables"`
	Status    string   `json:"status"`
}
