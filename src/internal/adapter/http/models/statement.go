package models

type StatementHeader struct {
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

type StatementRow struct {
	Date         string `json:"date"`
	Kind         string `json:"kind"`
	Label        string `json:"label"`
	Amount       string `json:"amount"`
	RunningTotal string `json:"runningTotal"`
}

type StatementResponse struct {
	Header StatementHeader `json:"header"`
	Rows   []StatementRow  `json:"rows"`
}
