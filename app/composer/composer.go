// Package composer turns an event plus its enrichment results into the
// outbound message for one recipient. Pure functions, no I/O.
package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
	"github.com/fedorhub/ms-go-notifications/app/gateway"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

// Welcome composes the registration email. Shop owners get their own copy.
func Welcome(u *entity.User) provider.Message {
	if u.Role == entity.RoleShopOwner {
		return provider.Message{
			To:      u.Email,
			Subject: "Welcome, Shop Owner!",
			Text:    "Your shop owner account has been successfully created.",
			HTML: fmt.Sprintf(`<h1>Welcome to Our Platform, %s!</h1>
<p>We're excited to have you as a shop owner. Start managing your shop and serving your customers today!</p>
<p><strong>Get started now and grow your business with us.</strong></p>`, u.Username),
		}
	}
	return provider.Message{
		To:      u.Email,
		Subject: "Welcome to Our Service!",
		Text:    "Your account has been successfully created.",
		HTML: fmt.Sprintf(`<h1>Hello, %s!</h1>
<p>We're thrilled to welcome you to our community. Explore and enjoy our amazing features!</p>
<p><strong>Your journey begins now. Let's make it memorable!</strong></p>`, u.Username),
	}
}

// LoginAlert composes the email sent after a successful login.
func LoginAlert(u *entity.User) provider.Message {
	return provider.Message{
		To:      u.Email,
		Subject: "Login Alert!",
		Text:    "Your account was accessed successfully.",
		HTML: fmt.Sprintf(`<h1>Hello, %s!</h1>
<p>We noticed a login to your account just now. If this was you, enjoy your session!</p>
<p><strong>Secure your account and always stay vigilant.</strong></p>`, u.Username),
	}
}

// LogoutNotice composes the email sent after a logout.
func LogoutNotice(u *entity.User) provider.Message {
	return provider.Message{
		To:      u.Email,
		Subject: "Goodbye for Now!",
		Text:    "You have logged out successfully.",
		HTML: fmt.Sprintf(`<h1>Goodbye, %s!</h1>
<p>You've logged out from your account. We'll be here when you return!</p>
<p><strong>Stay safe and come back soon!</strong></p>`, u.Username),
	}
}

// ProductCreated composes the seller confirmation for a new product.
func ProductCreated(u *entity.User, ev event.Product) provider.Message {
	return provider.Message{
		To:      u.Email,
		Subject: "Product Created Successfully",
		Text:    fmt.Sprintf("Your product %q has been successfully created!", ev.Title),
		HTML: fmt.Sprintf(`<p>Hi %s,</p>
<p>Your new product has been created successfully:</p>
<ul>
  <li><b>Title:</b> %s</li>
  <li><b>Description:</b> %s</li>
  <li><b>Price:</b> $%.2f</li>
  <li><b>Quantity:</b> %d</li>
</ul>
<p>Created on: %s</p>`, u.Username, ev.Title, ev.Description, ev.Price, ev.Quantity,
			ev.CreatedAt.Format("01/02/2006")),
	}
}

// ProductUpdated composes the seller confirmation for an updated product.
func ProductUpdated(u *entity.User, ev event.Product) provider.Message {
	return provider.Message{
		To:      u.Email,
		Subject: "Product Updated Successfully",
		Text:    fmt.Sprintf("Your product %q has been successfully updated!", ev.Title),
		HTML: fmt.Sprintf(`<p>Hi %s,</p>
<p>Your product has been updated successfully with the following details:</p>
<ul>
  <li><b>Title:</b> %s</li>
  <li><b>Description:</b> %s</li>
  <li><b>Category:</b> %s</li>
  <li><b>Price:</b> $%.2f</li>
  <li><b>Current Quantity:</b> %d</li>
</ul>
<p>If you didn't request this update, please contact our support team immediately.</p>
<p>Thank you for keeping your products up to date!</p>`,
			u.Username, ev.Title, ev.Description, ev.Category, ev.Price, ev.Quantity),
	}
}

// ProductDeleted composes the seller confirmation for a deleted product,
// including the remaining quantity before deletion.
func ProductDeleted(u *entity.User, ev event.Product) provider.Message {
	return provider.Message{
		To:      u.Email,
		Subject: "Product Deleted Successfully",
		Text:    fmt.Sprintf("Your product %q has been successfully deleted.", ev.Title),
		HTML: fmt.Sprintf(`<p>Hi %s,</p>
<p>We have processed your request to delete the following product:</p>
<ul>
  <li><b>Title:</b> %s</li>
  <li><b>Description:</b> %s</li>
  <li><b>Category:</b> %s</li>
  <li><b>Price:</b> $%.2f</li>
  <li><b>Remaining Quantity Before Deletion:</b> %d</li>
</ul>
<p>Your product has been successfully removed from our platform.</p>
<p>If you deleted this by mistake or need assistance, feel free to contact us at <a href="mailto:support@example.com">support@example.com</a>.</p>
<p>Warm regards,</p>
<p><b>Your Product Team</b></p>`,
			u.Username, ev.Title, ev.Description, ev.Category, ev.Price, ev.Quantity),
	}
}

// SellerOrderLine composes the email one seller receives for one line item of
// an order event. Remaining stock below or at the unknown sentinel renders as
// "Unknown".
func SellerOrderLine(u *entity.User, t event.Type, title string, quantity, remaining int) provider.Message {
	stock := FormatQuantity(remaining)

	switch t {
	case event.TypeOrderUpdated:
		return provider.Message{
			To:      u.Email,
			Subject: "Order Updated",
			Text:    fmt.Sprintf("The order for %q has been updated", title),
			HTML: fmt.Sprintf(`<p>Hi <b>%s</b>,</p>
<p>The order for your product has been updated:</p>
<ul>
  <li><b>Product:</b> %s</li>
  <li><b>Updated Quantity:</b> %d</li>
  <li><b>Remaining Stock:</b> %s</li>
</ul>
<p>Keep track of your stock levels and fulfill this updated order. Thank you!</p>`,
				u.Username, title, quantity, stock),
		}
	case event.TypeOrderDeleted:
		return provider.Message{
			To:      u.Email,
			Subject: "Order Cancelled",
			Text:    fmt.Sprintf("The order for %q has been cancelled.", title),
			HTML: fmt.Sprintf(`<p>Hi <b>%s</b>,</p>
<p>An order for your product has been cancelled:</p>
<ul>
  <li><b>Product:</b> %s</li>
  <li><b>Cancelled Quantity:</b> %d</li>
  <li><b>Remaining Stock:</b> %s</li>
</ul>
<p>We regret the cancellation but trust you'll continue providing great service!</p>`,
				u.Username, title, quantity, stock),
		}
	default:
		return provider.Message{
			To:      u.Email,
			Subject: "New Order Received",
			Text:    fmt.Sprintf("A new order has been placed for %q", title),
			HTML: fmt.Sprintf(`<p>Hi <b>%s</b>,</p>
<p>A new order has been placed for your product:</p>
<ul>
  <li><b>Product:</b> %s</li>
  <li><b>Quantity Ordered:</b> %d</li>
  <li><b>Remaining Stock:</b> %s</li>
</ul>
<p>Please prepare the order promptly. Thank you!</p>`,
				u.Username, title, quantity, stock),
		}
	}
}

// BuyerOrderSummary composes the single consolidated email the buyer receives
// listing every line item of the order.
func BuyerOrderSummary(u *entity.User, ev event.Order) provider.Message {
	var label, subject, intro, outro string
	switch ev.Type {
	case event.TypeOrderUpdated:
		label, subject = "Updated Quantity", "Order Updated"
		intro = "Your order has been updated:"
		outro = "Thank you for your continued support!"
	case event.TypeOrderDeleted:
		label, subject = "Cancelled Quantity", "Order Cancelled"
		intro = "Your order has been cancelled:"
		outro = "We're sorry for any inconvenience caused."
	default:
		label, subject = "Quantity", "Order Placed"
		intro = "Your order has been successfully placed:"
		outro = "Thank you for shopping with us!"
	}

	var items strings.Builder
	for i, title := range ev.Titles {
		fmt.Fprintf(&items, "<li>%s (%s: %d)</li>", title, label, ev.Quantities[i])
	}

	var verb string
	switch ev.Type {
	case event.TypeOrderUpdated:
		verb = "updated"
	case event.TypeOrderDeleted:
		verb = "cancelled"
	default:
		verb = "placed successfully"
	}

	return provider.Message{
		To:      u.Email,
		Subject: subject,
		Text:    fmt.Sprintf("Your order for %q has been %s.", strings.Join(ev.Titles, ", "), verb),
		HTML: fmt.Sprintf(`<p>Hi <b>%s</b>,</p>
<p>%s</p>
<ul>%s</ul>
<p>%s</p>`, u.Username, intro, items.String(), outro),
	}
}

// FormatQuantity renders a stock level for notification copy.
func FormatQuantity(quantity int) string {
	if quantity <= gateway.QuantityUnknown {
		return "Unknown"
	}
	return strconv.Itoa(quantity)
}
