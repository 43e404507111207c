package wire

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// RawCustomer datos del cliente en el pedido.
type RawCustomer struct {
	Name      Text `json:"name"`
	Nombre    Text `json:"nombre"`
	Phone     Text `json:"phone"`
	Telefono  Text `json:"telefono"`
	Address   Text `json:"address"`
	Direccion Text `json:"direccion"`
	Note      Text `json:"note"`
	Nota      Text `json:"nota"`
	Notas     Text `json:"notas"`
}

// UnmarshalJSON ignora formas que no sean objeto.
func (c *RawCustomer) UnmarshalJSON(b []byte) error {
	type alias RawCustomer
	var a alias
	if json.Unmarshal(b, &a) == nil {
		*c = RawCustomer(a)
	}
	return nil
}

// RawOrderItem línea de pedido tal como llega del backend.
type RawOrderItem struct {
	Refid     Text   `json:"refid"`
	SKU       Text   `json:"sku"`
	Title     Text   `json:"title"`
	Titulo    Text   `json:"titulo"`
	Nombre    Text   `json:"nombre"`
	Brand     Text   `json:"brand"`
	Marca     Text   `json:"marca"`
	UnitPrice Number `json:"unitPrice"`
	Price     Number `json:"price"`
	Precio    Number `json:"precio"`
	Quantity  Number `json:"quantity"`
	Qty       Number `json:"qty"`
	Cantidad  Number `json:"cantidad"`
	Subtotal  Number `json:"subtotal"`
}

// RawTotals bloque de totales opcional.
type RawTotals struct {
	ItemsCount Number `json:"itemsCount"`
	Subtotal   Number `json:"subtotal"`
	Total      Number `json:"total"`
}

// UnmarshalJSON ignora formas que no sean objeto.
func (t *RawTotals) UnmarshalJSON(b []byte) error {
	type alias RawTotals
	var a alias
	if json.Unmarshal(b, &a) == nil {
		*t = RawTotals(a)
	}
	return nil
}

// RawOrder variante de cable de un pedido.
type RawOrder struct {
	ID          ID     `json:"id"`
	MongoID     ID     `json:"_id"`
	OrderID     Number `json:"orderId"`
	OrderNumber Text   `json:"orderNumber"`
	Numero      Text   `json:"numero"`

	Status Text `json:"status"`
	Estado Text `json:"estado"`

	Customer RawCustomer `json:"customer"`
	Cliente  RawCustomer `json:"cliente"`

	Items     List[RawOrderItem] `json:"items"`
	Productos List[RawOrderItem] `json:"productos"`

	Totals     RawTotals `json:"totals"`
	ItemsCount Number    `json:"itemsCount"`
	Subtotal   Number    `json:"subtotal"`
	Total      Number    `json:"total"`

	CreatedAt Time `json:"createdAt"`
	Fecha     Time `json:"fecha"`
}

// NormalizeOrder convierte la variante de cable en la entidad canónica.
// Los totales que falten se derivan de las líneas; nunca quedan indefinidos.
func NormalizeOrder(raw RawOrder) entity.Order {
	orderNumber := string(first(raw.OrderNumber, raw.Numero))
	var numericID int64
	if raw.OrderID.Set {
		numericID = raw.OrderID.Value.IntPart()
	}
	id := string(first(raw.ID, raw.MongoID))
	if id == "" {
		id = orderNumber
	}
	if id == "" && raw.OrderID.Set {
		id = strconv.FormatInt(numericID, 10)
	}

	status, ok := entity.ParseOrderStatus(string(first(raw.Status, raw.Estado)))
	if !ok {
		status = entity.OrderPending
	}

	cust := raw.Customer
	if cust == (RawCustomer{}) {
		cust = raw.Cliente
	}

	rawItems := raw.Items
	if len(rawItems) == 0 {
		rawItems = raw.Productos
	}
	items := make([]entity.OrderItem, 0, len(rawItems))
	for _, ri := range rawItems {
		items = append(items, normalizeItem(ri))
	}

	derived := entity.ComputeTotals(items)
	totals := entity.Totals{ItemsCount: derived.ItemsCount, Subtotal: derived.Subtotal}
	if n := firstNumber(raw.Totals.ItemsCount, raw.ItemsCount); n.Set {
		totals.ItemsCount = n.Int()
	}
	if n := firstNumber(raw.Totals.Subtotal, raw.Subtotal); n.Set {
		totals.Subtotal = n.Value
	}
	totals.Total = totals.Subtotal
	if n := firstNumber(raw.Totals.Total, raw.Total); n.Set {
		totals.Total = n.Value
	}

	return entity.Order{
		ID:          id,
		OrderID:     numericID,
		OrderNumber: orderNumber,
		Status:      status,
		Customer: entity.Customer{
			Name:    string(first(cust.Name, cust.Nombre)),
			Phone:   string(first(cust.Phone, cust.Telefono)),
			Address: string(first(cust.Address, cust.Direccion)),
			Note:    string(first(cust.Note, cust.Nota, cust.Notas)),
		},
		Items:     items,
		Totals:    totals,
		CreatedAt: firstTime(raw.CreatedAt, raw.Fecha),
	}
}

// normalizeItem: cantidad ausente o ilegible cuenta como 1, negativa como 0.
func normalizeItem(ri RawOrderItem) entity.OrderItem {
	qty := 1
	if q := firstNumber(ri.Quantity, ri.Qty, ri.Cantidad); q.Set {
		qty = q.Int()
		if qty < 0 {
			qty = 0
		}
	}
	price := firstNumber(ri.UnitPrice, ri.Price, ri.Precio).Value
	subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
	if ri.Subtotal.Set {
		subtotal = ri.Subtotal.Value
	}
	return entity.OrderItem{
		Refid:     string(first(ri.Refid, ri.SKU)),
		Title:     string(first(ri.Title, ri.Titulo, ri.Nombre)),
		Brand:     string(first(ri.Brand, ri.Marca)),
		UnitPrice: price,
		Quantity:  qty,
		Subtotal:  subtotal,
	}
}

// DecodeOrder decodifica un pedido (con o sin sobre). Nunca falla.
func DecodeOrder(body []byte) entity.Order {
	return NormalizeOrder(decodeObject[RawOrder](body))
}

// DecodeOrders decodifica un listado de pedidos. Nunca falla.
func DecodeOrders(body []byte) []entity.Order {
	return decodeList(body, DecodeOrder)
}
