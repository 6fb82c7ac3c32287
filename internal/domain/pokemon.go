package domain

// PokemonType is created lazily the first time a pokemon of that type is
// resolved from the upstream API. Rows are never updated or deleted.
type PokemonType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (PokemonType) TableName() string { return "pokemon_types" }

// Pokemon is a locally cached catalog entry. The ID is the upstream API's
// id, not a locally generated one; once persisted a row is trusted forever
// (no refresh or invalidation).
type Pokemon struct {
	ID             int64   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name           string  `json:"name" gorm:"uniqueIndex;not null"`
	ImageURL       *string `json:"image_url"`
	TypeID         *int64  `json:"type_id" gorm:"index"`
	HP             int     `json:"hp"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	SpecialAttack  int     `json:"special_attack"`
	SpecialDefense int     `json:"special_defense"`
	Speed          int     `json:"speed"`

	Type *PokemonType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
}

func (Pokemon) TableName() string { return "pokemons" }

// UserPokemon is the per-user ledger tracking favorite status and battle
// group membership for one pokemon. The composite unique index is the
// backstop against duplicate rows from concurrent favoriting.
type UserPokemon struct {
	ID          int64 `json:"id" gorm:"primaryKey"`
	UserID      int64 `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_pokemon"`
	PokemonID   int64 `json:"pokemon_id" gorm:"not null;uniqueIndex:idx_user_pokemon"`
	Favorite    bool  `json:"favorite" gorm:"not null;default:false"`
	BattleGroup bool  `json:"battle_group" gorm:"not null;default:false"`

	Pokemon *Pokemon `json:"pokemon,omitempty" gorm:"foreignKey:PokemonID"`
}

func (UserPokemon) TableName() string { return "user_pokemons" }
