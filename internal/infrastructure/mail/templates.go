package mail

const confirmationBody = `<html>
<body>
<p>Hello {{.Name}},</p>
<p>Thank you for registering. Use the key below to confirm your email address:</p>
<p><strong>{{.Key}}</strong></p>
<p>If you did not create this account, ignore this message.</p>
</body>
</html>`

const orderPlacedBody = `<html>
<body>
{{if .ForAdmin}}<p>New order <strong>{{.OrderID}}</strong> from {{.Customer}} ({{.Email}}).</p>
{{else}}<p>Hello {{.Customer}},</p>
<p>Your order <strong>{{.OrderID}}</strong> has been placed.</p>
{{end}}<p>Delivery: {{.Address}}, phone {{.Phone}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Product</th><th>Quantity</th><th>Price</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Subtotal}}</td></tr>
{{end}}</table>
<p>Total: <strong>{{.Total}}</strong></p>
</body>
</html>`
