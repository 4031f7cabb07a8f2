package models

import "time"

type Goal struct {
	ID          int        `json:"id"`
	Titulo      string     `json:"titulo"`
	Descricao   string     `json:"descricao"`
	DataInicial *time.Time `json:"data_inicial"`
	DataFinal   *time.Time `json:"data_final"`
	UsuarioID   int        `json:"-"`
}
