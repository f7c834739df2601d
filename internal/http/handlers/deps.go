package handlers

import (
	"jivuma/internal/cart"
	"jivuma/internal/config"
	"jivuma/internal/pricing"
	"jivuma/internal/repos"
	"jivuma/internal/services"

	"github.com/shopspring/decimal"
)

type Deps struct {
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(cfg config.Config, catalog *repos.CatalogRepo, store *cart.Store) *Deps {
	policy := pricing.Policy{
		FreeDeliveryMinQty: cfg.FreeDeliveryMinQty,
		FlatDeliveryCharge: decimal.NewFromInt(int64(cfg.DeliveryCharge)),
	}

	catalogSvc := services.NewCatalogService(catalog)
	sender := &services.WhatsAppSender{To: cfg.WhatsAppTo}
	orderSvc := services.NewOrderService(policy, sender, cfg.WhatsAppTo)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Store: store, Catalog: catalogSvc, Policy: policy},
		OrderHandler:   &OrderHandler{Store: store, Order: orderSvc, Policy: policy},
	}
}
