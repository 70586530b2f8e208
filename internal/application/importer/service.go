package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// SkippedGood records a feed position the import dropped and why. The
// rest of the feed still goes through.
type SkippedGood struct {
	ExternalID int64  `json:"external_id"`
	Reason     string `json:"reason"`
}

// Result summarizes a finished import.
type Result struct {
	ShopID   uuid.UUID     `json:"shop_id"`
	ShopName string        `json:"shop_name"`
	Imported int           `json:"imported"`
	Skipped  []SkippedGood `json:"skipped,omitempty"`
}

// Service replaces a supplier's catalog from an uploaded price list.
// The whole replacement runs in one transaction: a structural failure
// leaves the previous catalog as it was.
type Service struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a new import Service
func NewService(scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{scope: scope, logger: logger.Named("importer")}
}

// Import decodes the price list and applies it to the supplier's shop.
// fileRef is the storage key of the uploaded file and is recorded on
// the shop for audit.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, data []byte, fileRef string) (*Result, error) {
	doc, err := DecodePriceList(data)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	err = s.scope.Execute(ctx, func(store Store) error {
		shop, err := store.GetOrCreateShop(ctx, userID, doc.Shop)
		if err != nil {
			return err
		}
		if fileRef != "" {
			shop.FileRef = fileRef
			if err := store.SaveShop(ctx, shop); err != nil {
				return err
			}
		}
		result.ShopID = shop.ID
		result.ShopName = shop.Name

		declared, err := s.applyCategories(ctx, store, shop, doc.Categories)
		if err != nil {
			return err
		}

		if err := store.ClearShopCatalog(ctx, shop.ID); err != nil {
			return err
		}

		for _, good := range doc.Goods {
			if err := s.applyGood(ctx, store, shop, declared, good, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("price list imported",
		zap.String("shop_id", result.ShopID.String()),
		zap.String("shop", result.ShopName),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// applyCategories upserts the declared categories, attaches them to the
// shop and returns the declared-ID to name mapping goods resolve with.
func (s *Service) applyCategories(ctx context.Context, store Store, shop *catalog.Shop, decls []CategoryDecl) (map[int64]string, error) {
	declared := make(map[int64]string, len(decls))
	for _, decl := range decls {
		category, err := store.UpsertCategory(ctx, decl.Name)
		if err != nil {
			return nil, err
		}
		if err := store.LinkShopCategory(ctx, shop.ID, category.ID); err != nil {
			return nil, err
		}
		if decl.ID != 0 {
			declared[decl.ID] = category.Name
		}
	}
	return declared, nil
}

// applyGood writes one feed position. Unresolvable categories and
// validation failures skip the good; storage errors abort the import.
func (s *Service) applyGood(ctx context.Context, store Store, shop *catalog.Shop, declared map[int64]string, good Good, result *Result) error {
	categoryName, reason := s.resolveCategoryName(declared, good.Category)
	if reason != "" {
		s.skip(result, good, reason)
		return nil
	}

	category, err := store.UpsertCategory(ctx, categoryName)
	if err != nil {
		if isDomainValidation(err) {
			s.skip(result, good, err.Error())
			return nil
		}
		return err
	}
	if err := store.LinkShopCategory(ctx, shop.ID, category.ID); err != nil {
		return err
	}

	product, err := catalog.NewProduct(shop.ID, category.ID, good.ID, good.Name)
	if err != nil {
		s.skip(result, good, err.Error())
		return nil
	}
	product, err = store.GetOrCreateProduct(ctx, product)
	if err != nil {
		return err
	}

	offer, err := catalog.NewProductInfo(product.ID, shop.ID, good.Model, good.Quantity,
		good.Price.Decimal, good.PriceRRC.Decimal)
	if err != nil {
		s.skip(result, good, err.Error())
		return nil
	}
	// A good listed twice with identical terms collapses into one offer.
	offer, err = store.GetOrCreateOffer(ctx, offer)
	if err != nil {
		return err
	}

	for _, kv := range good.Parameters {
		parameter, err := store.UpsertParameter(ctx, kv.Name)
		if err != nil {
			return err
		}
		link := &catalog.ProductParameter{
			ProductInfoID: offer.ID,
			ParameterID:   parameter.ID,
			Value:         kv.Value,
		}
		if err := store.UpsertOfferParameter(ctx, link); err != nil {
			return err
		}
	}

	result.Imported++
	return nil
}

// resolveCategoryName turns the feed's category reference into a
// category name. An inline name wins; a bare ID must have been declared
// at the top of the feed.
func (s *Service) resolveCategoryName(declared map[int64]string, ref CategoryRef) (string, string) {
	if ref.Name != "" {
		return ref.Name, ""
	}
	if ref.ID != 0 {
		name, ok := declared[ref.ID]
		if !ok {
			return "", fmt.Sprintf("category id %d is not declared in the feed", ref.ID)
		}
		return name, ""
	}
	return "", "good has no category"
}

func (s *Service) skip(result *Result, good Good, reason string) {
	s.logger.Warn("skipping good",
		zap.Int64("external_id", good.ID),
		zap.String("reason", reason))
	result.Skipped = append(result.Skipped, SkippedGood{ExternalID: good.ID, Reason: reason})
}

// isDomainValidation reports whether the error is a validation failure
// rather than a storage fault.
func isDomainValidation(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de)
}
