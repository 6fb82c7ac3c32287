package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulbasaurJSON = `{
	"name": "bulbasaur",
	"sprites": {"front_default": "https://img.example/1.png"},
	"types": [
		{"type": {"name": "grass"}},
		{"type": {"name": "poison"}}
	],
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}},
		{"base_stat": 49, "stat": {"name": "defense"}},
		{"base_stat": 65, "stat": {"name": "special-attack"}},
		{"base_stat": 65, "stat": {"name": "special-defense"}},
		{"base_stat": 45, "stat": {"name": "speed"}}
	]
}`

func TestClient_Fetch_ParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/1", r.URL.Path)
		w.Write([]byte(bulbasaurJSON))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	creature, err := client.Fetch(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", creature.Name)
	require.NotNil(t, creature.ImageURL)
	assert.Equal(t, "https://img.example/1.png", *creature.ImageURL)
	assert.Equal(t, []string{"grass", "poison"}, creature.Types)
	assert.Equal(t, 45, creature.HP)
	assert.Equal(t, 49, creature.Attack)
	assert.Equal(t, 49, creature.Defense)
	assert.Equal(t, 65, creature.SpecialAttack)
	assert.Equal(t, 65, creature.SpecialDefense)
	assert.Equal(t, 45, creature.Speed)
}

func TestClient_Fetch_MissingFieldsTolerated(t *testing.T) {
	// No sprites, no stats, empty type list.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "missingno", "types": [], "stats": []}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	creature, err := client.Fetch(context.Background(), 999)
	require.NoError(t, err)

	assert.Equal(t, "missingno", creature.Name)
	assert.Nil(t, creature.ImageURL)
	assert.Empty(t, creature.Types)
	assert.Zero(t, creature.HP)
	assert.Zero(t, creature.Speed)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.Fetch(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Fetch_UpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, time.Second)
	_, err := client.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Raw_LowercasesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/pikachu", r.URL.Path)
		w.Write([]byte(`{"name": "pikachu"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	raw, err := client.Raw(context.Background(), "  Pikachu ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "pikachu"}`, string(raw))
}
