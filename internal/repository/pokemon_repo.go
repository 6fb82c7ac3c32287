package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokedex/internal/domain"
)

type PokemonRepository struct {
	db *gorm.DB
}

func NewPokemonRepository(db *gorm.DB) *PokemonRepository {
	return &PokemonRepository{db: db}
}

func (r *PokemonRepository) GetByID(ctx context.Context, id int64) (*domain.Pokemon, error) {
	var p domain.Pokemon
	tx := r.db.WithContext(ctx).Preload("Type").First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// Create inserts the pokemon, tolerating a concurrent insert of the same id:
// on conflict nothing is written and the existing row is loaded back into p.
func (r *PokemonRepository) Create(ctx context.Context, p *domain.Pokemon) error {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return r.db.WithContext(ctx).Preload("Type").First(p, p.ID).Error
	}
	return nil
}

// GetOrCreateType resolves a type name to its row, inserting it on first
// sight. Insert-on-conflict plus re-fetch instead of check-then-insert, so a
// concurrent first resolve of the same type cannot fail the losing caller.
func (r *PokemonRepository) GetOrCreateType(ctx context.Context, name string) (*domain.PokemonType, error) {
	t := domain.PokemonType{Name: name}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&t)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// List returns one page of the local catalog ordered by id ascending,
// optionally filtered by a case-insensitive name substring, together with
// the filtered total. An out-of-range page yields an empty slice.
func (r *PokemonRepository) List(ctx context.Context, page, perPage int, name string) ([]domain.Pokemon, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		if name != "" {
			return tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		return tx
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&domain.Pokemon{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Pokemon
	err := filter(r.db.WithContext(ctx)).
		Preload("Type").
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
