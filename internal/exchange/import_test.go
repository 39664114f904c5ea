package exchange

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
)

func TestReadPlayersAcceptsExportDocument(t *testing.T) {
	payload := `{"players":[{"id":"player_5","name":"X","startDreads":0,"endDreads":10}],"exportDate":"2024-03-04T10:00:00Z","totalDreads":10}`
	got, err := ReadPlayers(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].ID != "player_5" || got[0].Kills() != 10 {
		t.Fatalf("unexpected players %+v", got)
	}
	if got[0].Coverage == nil {
		t.Fatalf("expected coverage normalised to empty slice")
	}
}

func TestReadPlayersRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"not json":         `{nope`,
		"missing players":  `{"foo":1}`,
		"players null":     `{"players":null}`,
		"players object":   `{"players":{"id":"player_1"}}`,
		"players string":   `{"players":"x"}`,
		"element no id":    `{"players":[{"name":"X"}]}`,
		"element bad type": `{"players":[{"id":"player_1","startDreads":"ten"}]}`,
		"element scalar":   `{"players":[1]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPlayers(strings.NewReader(payload))
			if !errors.Is(err, domain.ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}

func TestReadPlayersEmptyArray(t *testing.T) {
	got, err := ReadPlayers(strings.NewReader(`{"players":[]}`))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty import, got %v err=%v", got, err)
	}
}
