package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/usecase"
)

const (
	textVoucher      = "🔐 Vouchers are not available yet."
	textDeposit      = "Contact the admin to make a deposit."
	textInformation  = "Bot Status: Online."
	textPickMenu     = "Please pick a menu."
	textEmptyCatalog = "⚠️ No products yet."
	textStoreError   = "❌ Database error. Please try again."
	textStale        = "⚠️ The catalog has changed since it was shown to you. Here is the refreshed list, please pick again."
	textGone         = "⚠️ This product is no longer available."
	textVariantGone  = "⚠️ The options for this product have changed. Please open the product again."
	textNoPending    = "⚠️ <b>No pending invoice!</b>\nPlease check out a product before sending a transfer proof."
	textUploading    = "⏳ <i>Uploading proof...</i>"
	textUploadFailed = "⚠️ Upload failed. Please send the photo again."
	textProofTwice   = "ℹ️ A proof for this order was already received. Please wait for verification."

	textHowToBuy = `📚 <b>HOW TO BUY:</b>
1. Open <b>Product List</b>.
2. Note the number of the product you want (e.g. 1).
3. Tap <b>1</b> on the keyboard.
4. Pick an option and transfer.`

	divider = "────────────────────"
)

// FormatRupiah renders an amount with '.' thousands separators, e.g. "Rp 10.000".
func FormatRupiah(amount int64) string {
	return "Rp " + groupThousands(amount)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " / " + html.EscapeString(unit)
}

func welcomeText(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("👋 <b>Hello, %s!</b>\nWelcome to Store Bot.\n\nOpen <b>Product List</b> below to start.", html.EscapeString(name))
}

func stockText(total int) string {
	return fmt.Sprintf("📊 <b>Stock Info</b>\n\nActive products: <b>%d Items</b>", total)
}

func notFoundText(n int) string {
	return fmt.Sprintf("⚠️ Product number %d not found.", n)
}

func productListText(entries []usecase.CatalogEntry) string {
	if len(entries) == 0 {
		return textEmptyCatalog
	}

	var b strings.Builder
	b.WriteString("🛒 <b>PRICE LIST</b>\n\n")
	for _, e := range entries {
		p := e.Product
		var price string
		if p.HasVariants() {
			price = "From " + FormatRupiah(p.MinVariantPrice())
		} else {
			price = FormatRupiah(p.Price) + unitSuffix(p.Unit)
		}
		fmt.Fprintf(&b, "<b>%d. %s</b>\n   └ %s\n\n", e.Number, html.EscapeString(strings.ToUpper(p.Name)), price)
	}
	b.WriteString("<i>Type or tap a product number to order by option or by unit.</i>")
	return b.String()
}

func productDetailText(p model.Product) string {
	description := p.Description
	if strings.TrimSpace(description) == "" {
		description = "-"
	}

	var b strings.Builder
	b.WriteString("🛍 <b>PRODUCT DETAIL</b>\n" + divider + "\n")
	fmt.Fprintf(&b, "📦 <b>%s</b>\n📄 %s\n%s\n", html.EscapeString(strings.ToUpper(p.Name)), html.EscapeString(description), divider)
	if p.HasVariants() {
		b.WriteString("\n👇 <b>Pick an option:</b>")
	} else {
		fmt.Fprintf(&b, "\n💰 <b>PRICE:</b> %s%s", FormatRupiah(p.Price), unitSuffix(p.Unit))
		b.WriteString("\n\n👇 <i>Tap the button below to buy:</i>")
	}
	return b.String()
}

func invoiceText(order *model.Order, unit string, bank config.BankAccount) string {
	variant := "-"
	suffix := unitSuffix(unit)
	if order.VariantName != nil {
		variant = html.EscapeString(*order.VariantName)
		suffix = ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚡️ <b>PAYMENT INVOICE (#%d)</b>\n%s\n", order.ID, divider)
	fmt.Fprintf(&b, "📦 <b>Item:</b> %s\n", html.EscapeString(strings.ToUpper(order.ProductName)))
	fmt.Fprintf(&b, "🔖 <b>Option:</b> %s\n", variant)
	fmt.Fprintf(&b, "💰 <b>Total:</b> %s%s\n%s\n\n", FormatRupiah(order.TotalPrice), suffix, divider)
	fmt.Fprintf(&b, "🏦 <b>TRANSFER TO:</b>\n<b>%s</b>\n<code>%s</code>\nA.N %s\n\n",
		html.EscapeString(bank.Bank), html.EscapeString(bank.Number), html.EscapeString(bank.Holder))
	b.WriteString("📸 <b>NEXT STEP:</b>\nOrder status: <b>🟡 PENDING</b>.\nPlease <b>send the transfer proof photo</b> in this chat.")
	return b.String()
}

func receiptText(order *model.Order) string {
	return fmt.Sprintf("✅ <b>PROOF RECEIVED!</b>\n%s\n<b>Order ID:</b> #%d\n<b>Product:</b> %s\n<b>Status:</b> 🔵 VERIFICATION\n\nPlease wait while the admin verifies it.\nYour product will be delivered here once the order is completed.",
		divider, order.ID, html.EscapeString(order.Item()))
}

func completedText(order *model.Order) string {
	notes := ""
	if order.AdminNotes != nil {
		notes = strings.ReplaceAll(*order.AdminNotes, "`", "'")
	}
	return fmt.Sprintf("✅ *ORDER COMPLETED!*\n\nThanks for waiting. Here are your order details:\n\n📦 *Account info / voucher code:*\n`%s`\n\n(Tap the text above to copy it)\n\nSee you next time! ⭐", notes)
}

func operatorProofText(order *model.Order) string {
	link := ""
	if order.PaymentProofURL != nil {
		link = *order.PaymentProofURL
	}
	return fmt.Sprintf("📥 <b>New payment proof</b>\n<b>Order:</b> #%d\n<b>User:</b> <code>%d</code>\n<b>Item:</b> %s\n<b>Total:</b> %s\n<b>Proof:</b> %s",
		order.ID, order.UserID, html.EscapeString(order.Item()), FormatRupiah(order.TotalPrice), html.EscapeString(link))
}
