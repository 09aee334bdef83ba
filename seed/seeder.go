package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/services"
	"gorm.io/gorm"
)

// ErrAlreadySeeded is returned when the database already holds accounts
var ErrAlreadySeeded = errors.New("database already contains buyers or sellers")

// Result counts what Apply created
type Result struct {
	Sellers     int
	Buyers      int
	Machineries int
	Images      int
	Categories  int
	Orders      int
}

func (r Result) String() string {
	return fmt.Sprintf("%d sellers, %d buyers, %d machineries, %d images, %d categories, %d orders",
		r.Sellers, r.Buyers, r.Machineries, r.Images, r.Categories, r.Orders)
}

// Apply creates the fixture through the domain services, so seeded data
// passes the same validation and uniqueness checks as API input. It refuses
// to run against a database that already has accounts.
func Apply(ctx context.Context, db *gorm.DB, fixture *Fixture) (Result, error) {
	var result Result
	uow := repository.NewUnitOfWork(db)

	if err := ensureEmpty(ctx, uow); err != nil {
		return result, err
	}

	sellerIDs := make(map[string]uint)
	sellers := services.NewSellerService(uow)
	for _, s := range fixture.Sellers {
		seller, err := sellers.Create(ctx, dto.SellerRequest{
			AccountRequest: s.account(),
			AddressLine:    s.AddressLine,
			LogoURL:        s.LogoURL,
		})
		if err != nil {
			return result, fmt.Errorf("seller %q: %w", s.Key, err)
		}
		sellerIDs[s.Key] = seller.ID
		result.Sellers++
	}

	buyerIDs := make(map[string]uint)
	buyers := services.NewBuyerService(uow)
	for _, b := range fixture.Buyers {
		buyer, err := buyers.Create(ctx, dto.BuyerRequest{
			AccountRequest: b.account(),
			Name:           b.Name,
			Surname:        b.Surname,
			AddressLine:    b.AddressLine,
		})
		if err != nil {
			return result, fmt.Errorf("buyer %q: %w", b.Key, err)
		}
		buyerIDs[b.Key] = buyer.ID
		result.Buyers++
	}

	machineryIDs := make(map[string]uint)
	machineries := services.NewMachineryService(uow)
	images := services.NewImageService(uow)
	for _, m := range fixture.Machineries {
		machinery, err := machineries.Create(ctx, dto.CreateMachineryRequest{
			Name:        m.Name,
			AddressLine: m.AddressLine,
			Price:       m.Price,
			SellerID:    sellerIDs[m.Seller],
		})
		if err != nil {
			return result, fmt.Errorf("machinery %q: %w", m.Key, err)
		}
		machineryIDs[m.Key] = machinery.ID
		result.Machineries++

		for _, url := range m.Images {
			if _, err := images.Create(ctx, dto.ImageRequest{URL: url, MachineryID: machinery.ID}); err != nil {
				return result, fmt.Errorf("image %q: %w", url, err)
			}
			result.Images++
		}
	}

	categories := services.NewCategoryService(uow)
	for _, c := range fixture.Categories {
		if _, err := categories.Create(ctx, dto.CategoryRequest{
			Name:         c.Name,
			MachineryIDs: lookup(machineryIDs, c.Machineries),
		}); err != nil {
			return result, fmt.Errorf("category %q: %w", c.Name, err)
		}
		result.Categories++
	}

	orders := services.NewOrderService(uow)
	for i, o := range fixture.Orders {
		if _, err := orders.Create(ctx, dto.CreateOrderRequest{
			Status:       o.Status,
			BuyerID:      buyerIDs[o.Buyer],
			MachineryIDs: lookup(machineryIDs, o.Machineries),
		}); err != nil {
			return result, fmt.Errorf("order %d: %w", i+1, err)
		}
		result.Orders++
	}

	log.Printf("Seeded %s", result)
	return result, nil
}

func ensureEmpty(ctx context.Context, uow *repository.UnitOfWork) error {
	buyers, err := repository.New[models.Buyer, uint](uow).GetAll(ctx)
	if err != nil {
		return err
	}
	sellers, err := repository.New[models.Seller, uint](uow).GetAll(ctx)
	if err != nil {
		return err
	}
	if len(buyers) > 0 || len(sellers) > 0 {
		return ErrAlreadySeeded
	}
	return nil
}

func (a AccountFixture) account() dto.AccountRequest {
	return dto.AccountRequest{
		UserName:    a.UserName,
		Email:       a.Email,
		Password:    a.Password,
		PhoneNumber: a.PhoneNumber,
	}
}

func lookup(ids map[string]uint, keys []string) []uint {
	out := make([]uint, 0, len(keys))
	for _, key := range keys {
		out = append(out, ids[key])
	}
	return out
}
