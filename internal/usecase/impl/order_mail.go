package impl

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const orderConfirmationText = `Hi {{.Name}},

Thank you for your order!

Order {{.OrderID}}
Placed on {{.PlacedAt}}

Items:
{{range .Items}}  {{.Title}} (size {{.Size}}) x{{.Quantity}} @ {{.UnitPrice}} = {{.Subtotal}}
{{end}}
Total: {{.Total}}
Payment: {{.PaymentMethod}}

Shipping to:
  {{.Shipping.FirstName}} {{.Shipping.LastName}}
  {{.Shipping.Address}}
  {{.Shipping.City}}, {{.Shipping.State}} {{.Shipping.Pincode}}
  Phone: {{.Shipping.Mobile}}

We will let you know when it ships.
`

const orderConfirmationHTML = `<html>
<body>
<p>Hi {{.Name}},</p>
<p>Thank you for your order!</p>
<p><strong>Order {{.OrderID}}</strong><br>Placed on {{.PlacedAt}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Item</th><th>Size</th><th>Qty</th><th>Unit price</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Size}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.Subtotal}}</td></tr>
{{end}}</table>
<p><strong>Total: {{.Total}}</strong><br>Payment: {{.PaymentMethod}}</p>
<p>Shipping to:<br>
{{.Shipping.FirstName}} {{.Shipping.LastName}}<br>
{{.Shipping.Address}}<br>
{{.Shipping.City}}, {{.Shipping.State}} {{.Shipping.Pincode}}<br>
Phone: {{.Shipping.Mobile}}</p>
<p>We will let you know when it ships.</p>
</body>
</html>
`

var (
	orderTextTmpl = texttemplate.Must(texttemplate.New("order_confirmation_text").Parse(orderConfirmationText))
	orderHTMLTmpl = htmltemplate.Must(htmltemplate.New("order_confirmation_html").Parse(orderConfirmationHTML))
)

type confirmationItem struct {
	Title     string
	Size      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type confirmationData struct {
	Name          string
	OrderID       string
	PlacedAt      string
	Items         []confirmationItem
	Total         string
	PaymentMethod string
	Shipping      entity.ShippingInfo
}

// renderOrderConfirmation builds the text and HTML bodies of the confirmation
// email for a freshly committed order.
func renderOrderConfirmation(user *entity.User, order *entity.Order) (*service.MailMessage, error) {
	items := make([]confirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		title := "Item"
		if item.Product != nil {
			title = item.Product.Title
		}
		items = append(items, confirmationItem{
			Title:     title,
			Size:      string(item.Size),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}

	data := confirmationData{
		Name:          user.FullName(),
		OrderID:       order.ID.String(),
		PlacedAt:      order.CreatedAt.Format("January 2, 2006"),
		Items:         items,
		Total:         order.TotalPrice.StringFixed(2),
		PaymentMethod: order.PaymentInfo.Method,
		Shipping:      order.ShippingInfo,
	}

	var textBody strings.Builder
	if err := orderTextTmpl.Execute(&textBody, data); err != nil {
		return nil, errors.Wrap(err, "failed to render text body")
	}

	var htmlBody strings.Builder
	if err := orderHTMLTmpl.Execute(&htmlBody, data); err != nil {
		return nil, errors.Wrap(err, "failed to render html body")
	}

	return &service.MailMessage{
		To:      user.Email,
		Subject: fmt.Sprintf("Order confirmation %s", order.ID),
		Text:    textBody.String(),
		HTML:    htmlBody.String(),
	}, nil
}
