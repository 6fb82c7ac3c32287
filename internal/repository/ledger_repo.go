package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokedex/internal/domain"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// MarkFavorite sets the favorite flag for the (user, pokemon) pair, creating
// the ledger entry if none exists. The upsert rides on the composite unique
// index, so a duplicate-favorite race ends with a single row either way.
func (r *LedgerRepository) MarkFavorite(ctx context.Context, userID, pokemonID int64) error {
	entry := domain.UserPokemon{
		UserID:    userID,
		PokemonID: pokemonID,
		Favorite:  true,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pokemon_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"favorite": true}),
	}).Create(&entry).Error
}

// Unfavorite clears the favorite flag. Returns gorm.ErrRecordNotFound when
// the pair has no currently-favorited entry. Battle group membership is
// intentionally left untouched.
func (r *LedgerRepository) Unfavorite(ctx context.Context, userID, pokemonID int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.UserPokemon{}).
		Where("user_id = ? AND pokemon_id = ? AND favorite = ?", userID, pokemonID, true).
		Update("favorite", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FavoriteEntries returns the user's favorited ledger entries restricted to
// the given pokemon ids.
func (r *LedgerRepository) FavoriteEntries(ctx context.Context, userID int64, pokemonIDs []int64) ([]domain.UserPokemon, error) {
	if len(pokemonIDs) == 0 {
		return nil, nil
	}
	var entries []domain.UserPokemon
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND favorite = ? AND pokemon_id IN ?", userID, true, pokemonIDs).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceBattleGroup swaps the user's battle group for the given ledger
// entries in one transaction: clear everything, then set the new members.
// Any failure rolls the whole swap back, leaving the previous group intact.
func (r *LedgerRepository) ReplaceBattleGroup(ctx context.Context, userID int64, entryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.UserPokemon{}).
			Where("user_id = ?", userID).
			Update("battle_group", false).Error; err != nil {
			return err
		}
		if len(entryIDs) == 0 {
			return nil
		}
		return tx.Model(&domain.UserPokemon{}).
			Where("id IN ?", entryIDs).
			Update("battle_group", true).Error
	})
}

func (r *LedgerRepository) Favorites(ctx context.Context, userID int64) ([]domain.UserPokemon, error) {
	return r.listByFlag(ctx, userID, "favorite")
}

func (r *LedgerRepository) BattleGroup(ctx context.Context, userID int64) ([]domain.UserPokemon, error) {
	return r.listByFlag(ctx, userID, "battle_group")
}

func (r *LedgerRepository) listByFlag(ctx context.Context, userID int64, flag string) ([]domain.UserPokemon, error) {
	var entries []domain.UserPokemon
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+flag+" = ?", userID, true).
		Preload("Pokemon.Type").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
