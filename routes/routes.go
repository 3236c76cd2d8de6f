package routes

import (
	"github.com/gofiber/fiber/v2"

	"backoffice-backend/controllers"
	"backoffice-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then the per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	// Services (catalog)
	protected.Post("/service", controllers.CreateServices) // batch create
	protected.Get("/services", controllers.GetServices)
	protected.Get("/service/:id/price", controllers.GetServicePrice)
	protected.Put("/service/:id", controllers.UpdateService)

	// Employees
	protected.Post("/employee", controllers.CreateEmployee)
	protected.Get("/employees", controllers.GetEmployees)
	protected.Put("/employee/:id", controllers.UpdateEmployee)

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Put("/customer/:id", controllers.UpdateCustomer)

	// Sales / commissions
	protected.Post("/transaction", controllers.RecordSale)
	protected.Get("/transactions", controllers.GetTransactions)
	protected.Put("/transaction/:id/commission-paid", controllers.MarkCommissionPaid)

	// Debt ledger
	protected.Get("/debtors", controllers.GetDebtors)
	protected.Post("/sales/:id/payments", controllers.ApplyPayment)
	protected.Get("/sales/:id/payments", controllers.ListPayments)
	protected.Get("/sales/:id/receipt", controllers.GetSaleReceipt)

	// Payment gateway
	protected.Post("/sales/:id/checkout", controllers.CreateCheckout)
	protected.Post("/payments/verify", controllers.VerifyPayment)

	// Contracts
	protected.Post("/contract", controllers.CreateContract)
	protected.Get("/contracts", controllers.GetContracts)
	protected.Get("/contract/:id", controllers.GetContract)
	protected.Get("/contract/:id/document", controllers.GetContractDocument)
	protected.Post("/contract/:id/sign-employee", controllers.SignContractAsEmployee)
	protected.Post("/contract/:id/sign-employer", middlewares.RequireOwner(), controllers.SignContractAsEmployer)
	protected.Post("/contract/:id/terminate", middlewares.RequireOwner(), controllers.TerminateContract)

	// Business settings
	protected.Get("/business", controllers.GetBusiness)
	protected.Put("/business", middlewares.RequireOwner(), controllers.UpdateBusiness)

	// Activity log
	protected.Get("/activity", controllers.GetActivity)
}
