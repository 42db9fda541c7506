// Package geo provides Brazilian geographic reference data (federative units
// and municipalities), map directions and distances for gas stations.
package geo

import "strings"

// Region is one of the five Brazilian regions.
type Region struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// UF is a Brazilian federative unit.
type UF struct {
	ID     int    `json:"id"`
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
	Regiao Region `json:"regiao"`
}

var (
	norte       = Region{ID: 1, Sigla: "N", Nome: "Norte"}
	nordeste    = Region{ID: 2, Sigla: "NE", Nome: "Nordeste"}
	sudeste     = Region{ID: 3, Sigla: "SE", Nome: "Sudeste"}
	sul         = Region{ID: 4, Sigla: "S", Nome: "Sul"}
	centroOeste = Region{ID: 5, Sigla: "CO", Nome: "Centro-Oeste"}
)

// IBGE codes and names of the 27 federative units.
var states = []UF{
	{ID: 11, Sigla: "RO", Nome: "Rondônia", Regiao: norte},
	{ID: 12, Sigla: "AC", Nome: "Acre", Regiao: norte},
	{ID: 13, Sigla: "AM", Nome: "Amazonas", Regiao: norte},
	{ID: 14, Sigla: "RR", Nome: "Roraima", Regiao: norte},
	{ID: 15, Sigla: "PA", Nome: "Pará", Regiao: norte},
	{ID: 16, Sigla: "AP", Nome: "Amapá", Regiao: norte},
	{ID: 17, Sigla: "TO", Nome: "Tocantins", Regiao: norte},
	{ID: 21, Sigla: "MA", Nome: "Maranhão", Regiao: nordeste},
	{ID: 22, Sigla: "PI", Nome: "Piauí", Regiao: nordeste},
	{ID: 23, Sigla: "CE", Nome: "Ceará", Regiao: nordeste},
	{ID: 24, Sigla: "RN", Nome: "Rio Grande do Norte", Regiao: nordeste},
	{ID: 25, Sigla: "PB", Nome: "Paraíba", Regiao: nordeste},
	{ID: 26, Sigla: "PE", Nome: "Pernambuco", Regiao: nordeste},
	{ID: 27, Sigla: "AL", Nome: "Alagoas", Regiao: nordeste},
	{ID: 28, Sigla: "SE", Nome: "Sergipe", Regiao: nordeste},
	{ID: 29, Sigla: "BA", Nome: "Bahia", Regiao: nordeste},
	{ID: 31, Sigla: "MG", Nome: "Minas Gerais", Regiao: sudeste},
	{ID: 32, Sigla: "ES", Nome: "Espírito Santo", Regiao: sudeste},
	{ID: 33, Sigla: "RJ", Nome: "Rio de Janeiro", Regiao: sudeste},
	{ID: 35, Sigla: "SP", Nome: "São Paulo", Regiao: sudeste},
	{ID: 41, Sigla: "PR", Nome: "Paraná", Regiao: sul},
	{ID: 42, Sigla: "SC", Nome: "Santa Catarina", Regiao: sul},
	{ID: 43, Sigla: "RS", Nome: "Rio Grande do Sul", Regiao: sul},
	{ID: 50, Sigla: "MS", Nome: "Mato Grosso do Sul", Regiao: centroOeste},
	{ID: 51, Sigla: "MT", Nome: "Mato Grosso", Regiao: centroOeste},
	{ID: 52, Sigla: "GO", Nome: "Goiás", Regiao: centroOeste},
	{ID: 53, Sigla: "DF", Nome: "Distrito Federal", Regiao: centroOeste},
}

// States returns the federative units in IBGE code order.
func States() []UF {
	out := make([]UF, len(states))
	copy(out, states)
	return out
}

// LookupState finds a federative unit by its two letter abbreviation.
func LookupState(sigla string) (UF, bool) {
	sigla = strings.ToUpper(strings.TrimSpace(sigla))
	for _, uf := range states {
		if uf.Sigla == sigla {
			return uf, true
		}
	}
	return UF{}, false
}
