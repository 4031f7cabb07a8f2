package models

import "time"

type Task struct {
	ID          int       `json:"id"`
	Titulo      string    `json:"titulo"`
	Descricao   string    `json:"descricao"`
	Status      string    `json:"status"`
	DataCriacao time.Time `json:"data_criacao"`
	UsuarioID   int       `json:"-"`
}
