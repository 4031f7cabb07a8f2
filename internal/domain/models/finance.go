package models

import "time"

// FinanceEntry is a single receita or despesa line.
type FinanceEntry struct {
	ID        int        `json:"id"`
	Tipo      string     `json:"tipo"`
	Valor     float64    `json:"valor"`
	Categoria string     `json:"categoria"`
	Data      *time.Time `json:"data"`
	Descricao string     `json:"descricao"`
	UsuarioID int        `json:"-"`
}
