package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound covers both a genuinely unknown pokemon and an upstream
// failure; the API deliberately does not distinguish the two.
var ErrNotFound = errors.New("pokemon not found upstream")

// Creature is the parsed subset of the upstream payload this service keeps.
type Creature struct {
	Name           string
	ImageURL       *string
	Types          []string
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type pokemonPayload struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
}

// Fetch retrieves and parses one pokemon by upstream id. A single attempt:
// any non-200 response or transport error is reported as ErrNotFound.
func (c *Client) Fetch(ctx context.Context, id int64) (*Creature, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var payload pokemonPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode pokemon %d: %w", id, err)
	}

	creature := &Creature{
		Name:     payload.Name,
		ImageURL: payload.Sprites.FrontDefault,
	}
	for _, t := range payload.Types {
		creature.Types = append(creature.Types, t.Type.Name)
	}
	// Stats absent from the payload stay 0.
	for _, s := range payload.Stats {
		switch s.Stat.Name {
		case "hp":
			creature.HP = s.BaseStat
		case "attack":
			creature.Attack = s.BaseStat
		case "defense":
			creature.Defense = s.BaseStat
		case "special-attack":
			creature.SpecialAttack = s.BaseStat
		case "special-defense":
			creature.SpecialDefense = s.BaseStat
		case "speed":
			creature.Speed = s.BaseStat
		}
	}
	return creature, nil
}

// Raw returns the unparsed upstream payload for a pokemon looked up by name.
func (c *Client) Raw(ctx context.Context, name string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, strings.ToLower(strings.TrimSpace(name))))
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, ErrNotFound
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	return io.ReadAll(res.Body)
}
