package pokemon

import "pokedex/internal/domain"

// CreatureView is the flattened shape all listing/favorites/group responses
// share.
type CreatureView struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Image          *string `json:"image"`
	Type           string  `json:"type"`
	HP             int     `json:"hp"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	SpecialAttack  int     `json:"special_attack"`
	SpecialDefense int     `json:"special_defense"`
	Speed          int     `json:"speed"`
}

type ListingResponse struct {
	Items   []CreatureView `json:"items"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	PerPage int            `json:"per_page"`
}

// Group stays untagged: an empty list is a valid request (it clears the
// battle group), which binding:"required" would reject.
type GroupRequest struct {
	Group []int64 `json:"group"`
}

func toView(p *domain.Pokemon) CreatureView {
	typeName := "N/A"
	if p.Type != nil {
		typeName = p.Type.Name
	}
	return CreatureView{
		ID:             p.ID,
		Name:           p.Name,
		Image:          p.ImageURL,
		Type:           typeName,
		HP:             p.HP,
		Attack:         p.Attack,
		Defense:        p.Defense,
		SpecialAttack:  p.SpecialAttack,
		SpecialDefense: p.SpecialDefense,
		Speed:          p.Speed,
	}
}

// entriesToViews skips ledger entries whose pokemon row has vanished.
func entriesToViews(entries []domain.UserPokemon) []CreatureView {
	views := make([]CreatureView, 0, len(entries))
	for _, e := range entries {
		if e.Pokemon == nil {
			continue
		}
		views = append(views, toView(e.Pokemon))
	}
	return views
}
