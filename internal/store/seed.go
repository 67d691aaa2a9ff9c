package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/goldenhour-reservation/internal/model"
)

//go:embed seed.json
var seedJSON []byte

type seedDocument struct {
	Reservations []model.Reservation `json:"reservations"`
	Tables       []model.Table       `json:"tables"`
	Users        []model.User        `json:"users"`
}

// SeedState builds the initial demo state from the embedded seed file.
func SeedState() (*State, error) {
	return loadSeed(seedJSON)
}

func loadSeed(raw []byte) (*State, error) {
	if len(raw) == 0 {
		return nil, errors.New("seed file is empty")
	}

	var doc seedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	if len(doc.Tables) == 0 {
		return nil, errors.New("seed file does not contain tables")
	}
	if len(doc.Users) == 0 {
		return nil, errors.New("seed file does not contain users")
	}
	for _, u := range doc.Users {
		if !model.ValidRole(u.Role) {
			return nil, fmt.Errorf("seed user %s has unknown role %q", u.ID, u.Role)
		}
	}

	if doc.Reservations == nil {
		doc.Reservations = []model.Reservation{}
	}

	return &State{
		CurrentView:  ViewLanding,
		Reservations: doc.Reservations,
		Tables:       doc.Tables,
		Users:        doc.Users,
	}, nil
}
