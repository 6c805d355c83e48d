package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// Credenciales del modo demo.
const (
	DemoAdminUser     = "admin"
	DemoAdminPassword = "admin123"
	DemoAssistantUser = "asistente"
	DemoAssistantPass = "asistente123"
	DemoAssistantArea = "Box 1"
)

type demoProduct struct {
	id, name, category, area, supplier string
	qty, min, max                      int
	price                              int64
	expiresIn                          int // días desde hoy; 0 = sin vencimiento
	cold                               bool
}

var demoProducts = []demoProduct{
	{"prd-001", "Guantes de nitrilo talla M", "Desechables", "Box 1", "Dental Sur", 12, 5, 40, 8500, 0, false},
	{"prd-002", "Eyector desechable", "Desechables", "Box 1", "Dental Sur", 3, 10, 200, 95, 0, false},
	{"prd-003", "Lidocaína 2% con epinefrina", "Anestésicos", "Box 1", "Farmadental", 20, 10, 60, 1200, 20, false},
	{"prd-004", "Resina compuesta A2", "Restauración", "Box 2", "3M Chile", 4, 4, 15, 18900, 90, false},
	{"prd-005", "Adhesivo universal", "Restauración", "Box 2", "3M Chile", 0, 2, 8, 42000, -5, false},
	{"prd-006", "Bolsas de esterilización 90x230", "Esterilización", "Esterilización", "Medipro", 300, 100, 1000, 35, 0, false},
	{"prd-007", "Indicador biológico", "Esterilización", "Esterilización", "Medipro", 8, 6, 30, 4200, 200, false},
	{"prd-008", "Ionómero de vidrio", "Restauración", "Bodega", "GC Latam", 6, 2, 12, 23500, 45, false},
	{"prd-009", "Mascarillas quirúrgicas", "Desechables", "Recepción", "Medipro", 50, 20, 150, 60, 0, false},
	{"prd-010", "Vacuna influenza (personal)", "Otros", "Bodega", "Farmadental", 5, 2, 10, 9000, 12, true},
}

// NewDemoStore almacenamiento con un catálogo dental de ejemplo, movimientos de los últimos
// meses, documentos abiertos y dos usuarios (admin y un asistente de Box 1).
func NewDemoStore(now time.Time) (*Store, error) {
	s := NewStore()
	st := s.st
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, d := range demoProducts {
		received := today.AddDate(0, -2, 0)
		p := entity.Product{
			ID:                    d.id,
			Name:                  d.name,
			Category:              d.category,
			Area:                  d.area,
			Quantity:              d.qty,
			UnitPrice:             decimal.NewFromInt(d.price),
			MinStock:              d.min,
			Supplier:              d.supplier,
			RequiresRefrigeration: d.cold,
			ReceivedDate:          &received,
			CreatedAt:             received,
			UpdatedAt:             received,
		}
		if d.max > 0 {
			m := d.max
			p.MaxStock = &m
		}
		if d.expiresIn != 0 {
			exp := today.AddDate(0, 0, d.expiresIn)
			p.ExpirationDate = &exp
		}
		st.products.put(p.ID, p)
	}

	n := 0
	for month := 2; month >= 0; month-- {
		for i, d := range demoProducts {
			if i%3 != month%3 {
				continue
			}
			n++
			date := today.AddDate(0, -month, -(i % 5))
			qty := 2 + i%4
			price := decimal.NewFromInt(d.price)
			st.purchases.put(fmt.Sprintf("cmp-%03d", n), entity.Purchase{
				ID:          fmt.Sprintf("cmp-%03d", n),
				Date:        date,
				ProductID:   d.id,
				ProductName: d.name,
				Quantity:    qty,
				UnitPrice:   price,
				TotalPrice:  price.Mul(decimal.NewFromInt(int64(qty))),
				Supplier:    d.supplier,
				Area:        d.area,
				User:        DemoAdminUser,
				CreatedAt:   date,
			})
			st.usage.put(fmt.Sprintf("con-%03d", n), entity.UsageEntry{
				ID:          fmt.Sprintf("con-%03d", n),
				Date:        date.AddDate(0, 0, 1),
				ProductID:   d.id,
				ProductName: d.name,
				Quantity:    1 + i%2,
				UnitPrice:   price,
				TotalPrice:  price.Mul(decimal.NewFromInt(int64(1 + i%2))),
				Area:        d.area,
				User:        DemoAssistantUser,
				CreatedAt:   date.AddDate(0, 0, 1),
			})
		}
	}

	ret := entity.Return{Document: entity.Document{
		ID:         "dev-001",
		Date:       today.AddDate(0, 0, -3),
		SupplierID: "3M Chile",
		Items: []entity.LineItem{
			{ProductID: "prd-005", ProductName: "Adhesivo universal", Quantity: 1, Reason: "vencido", UnitPrice: decimal.NewFromInt(42000)},
		},
		Status:    entity.StatusPending,
		User:      DemoAdminUser,
		Area:      "Box 2",
		CreatedAt: today.AddDate(0, 0, -3),
		UpdatedAt: today.AddDate(0, 0, -3),
	}}
	st.returns.put(ret.ID, ret)

	for _, o := range []entity.Order{
		{Document: entity.Document{
			ID:         "ped-001",
			Date:       today.AddDate(0, 0, -1),
			SupplierID: "Dental Sur",
			Items: []entity.LineItem{
				{ProductID: "prd-002", ProductName: "Eyector desechable", Quantity: 100, UnitPrice: decimal.NewFromInt(95)},
			},
			Status:    entity.StatusPending,
			User:      DemoAssistantUser,
			Area:      "Box 1",
			CreatedAt: today.AddDate(0, 0, -1),
			UpdatedAt: today.AddDate(0, 0, -1),
		}},
		{Document: entity.Document{
			ID:         "ped-002",
			Date:       today.AddDate(0, 0, -7),
			SupplierID: "3M Chile",
			Items: []entity.LineItem{
				{ProductID: "prd-005", ProductName: "Adhesivo universal", Quantity: 2, UnitPrice: decimal.NewFromInt(42000)},
				{ProductID: "prd-004", ProductName: "Resina compuesta A2", Quantity: 4, UnitPrice: decimal.NewFromInt(18900)},
			},
			Status:            entity.StatusSent,
			AppliedTransition: "pending->sent",
			User:              DemoAdminUser,
			Area:              "Box 2",
			CreatedAt:         today.AddDate(0, 0, -7),
			UpdatedAt:         today.AddDate(0, 0, -6),
		}},
	} {
		st.orders.put(o.ID, o)
	}

	users := []struct {
		id, username, password, name, role, area string
	}{
		{"usr-admin", DemoAdminUser, DemoAdminPassword, "Administración", entity.RoleAdmin, ""},
		{"usr-box1", DemoAssistantUser, DemoAssistantPass, "Asistente Box 1", entity.RoleAsistente, DemoAssistantArea},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo user %s: %w", u.username, err)
		}
		st.users.put(u.id, entity.User{
			ID:           u.id,
			Username:     u.username,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Area:         u.area,
			Status:       "active",
			CreatedAt:    today,
			UpdatedAt:    today,
		})
	}
	return s, nil
}
