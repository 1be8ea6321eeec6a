package model

import "time"

// ObraStatus is the lifecycle state of a construction site.
type ObraStatus string

const (
	ObraAtiva     ObraStatus = "ativa"
	ObraSuspensa  ObraStatus = "suspensa"
	ObraConcluida ObraStatus = "concluida"
)

// Valid reports whether s is a known status.
func (s ObraStatus) Valid() bool {
	switch s {
	case ObraAtiva, ObraSuspensa, ObraConcluida:
		return true
	}
	return false
}

// Obra is a construction site. Records and standard users belong to one.
type Obra struct {
	ID                        string     `json:"id"`
	Nome                      string     `json:"nome"`
	Descricao                 string     `json:"descricao"`
	Codigo                    string     `json:"codigo"`
	Cliente                   string     `json:"cliente"`
	DataInicio                *time.Time `json:"data_inicio,omitempty"`
	DataTermino               *time.Time `json:"data_termino,omitempty"`
	ResponsavelTecnico        string     `json:"responsavel_tecnico"`
	ResponsavelAdministrativo string     `json:"responsavel_administrativo"`
	Localizacao               string     `json:"localizacao"`
	Status                    ObraStatus `json:"status"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}
