package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backoffice-backend/database"
	"backoffice-backend/middlewares"
	"backoffice-backend/models"
)

const testBusiness = "biz-1"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Service{}, &models.Employee{}, &models.Transaction{},
		&models.Sale{}, &models.SaleItem{}, &models.Payment{},
		&models.ActivityLog{}, &models.PaymentIntent{}, &models.Contract{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	// Stand-in for the JWT middleware: a fixed authenticated identity.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "user-1")
		c.Locals("businessID", testBusiness)
		c.Locals("role", models.RoleOwner)
		return c.Next()
	})
	app.Post("/transaction", RecordSale)
	app.Post("/sales/:id/payments", ApplyPayment)
	app.Post("/sales/:id/checkout", CreateCheckout)
	app.Post("/payments/verify", VerifyPayment)
	app.Post("/contract", CreateContract)
	app.Post("/contract/:id/sign-employee", SignContractAsEmployee)
	app.Post("/contract/:id/sign-employer", SignContractAsEmployer)
	return app
}

func seedCatalog(t *testing.T) (models.Employee, models.Service) {
	t.Helper()
	employee := models.Employee{
		BusinessID:           testBusiness,
		Name:                 "Ada",
		CommissionType:       models.CommissionPercentage,
		CommissionPercentage: 15,
		Active:               true,
	}
	if err := database.DB.Create(&employee).Error; err != nil {
		t.Fatal(err)
	}
	service := models.Service{
		BusinessID: testBusiness,
		Name:       "Braiding",
		BasePrice:  1000,
		Active:     true,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatal(err)
	}
	return employee, service
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestRecordSalePersistsSplitAndActivity(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)

	status, _ := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":1000,"amount_paid":400,"payment_method":"cash","customer_name":"Ada Obi"}`,
		employee.Id, service.Id))
	if status != 201 {
		t.Fatalf("record sale status %d", status)
	}

	var tr models.Transaction
	if err := database.DB.First(&tr).Error; err != nil {
		t.Fatal(err)
	}
	if tr.CommissionAmount != 150 || tr.HouseAmount != 850 || tr.TotalAmount != 1000 {
		t.Fatalf("split wrong: %+v", tr)
	}
	if tr.BusinessID != employee.BusinessID || tr.EmployeeID != employee.Id {
		t.Fatalf("ownership wrong: %+v", tr)
	}
	if tr.IsCommissionPaid {
		t.Fatal("new transaction must not be marked commission-paid")
	}

	var sale models.Sale
	if err := database.DB.First(&sale).Error; err != nil {
		t.Fatal(err)
	}
	if sale.AmountPaid != 400 || sale.BalanceDue != 600 || sale.PaymentStatus != models.PaymentPartial {
		t.Fatalf("ledger sale wrong: %+v", sale)
	}

	var logs []models.ActivityLog
	if err := database.DB.Where("action = ?", models.ActionSaleRecorded).Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("want exactly one sale_recorded entry, got %d", len(logs))
	}
	if logs[0].EmployeeID == nil || *logs[0].EmployeeID != employee.Id {
		t.Fatalf("activity entry employee wrong: %+v", logs[0])
	}
}

func TestRecordSaleValidationPersistsNothing(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)

	cases := []string{
		fmt.Sprintf(`{"employee_id":%q,"service_id":%q,"sale_amount":0}`, employee.Id, service.Id),
		fmt.Sprintf(`{"employee_id":%q,"service_id":%q,"sale_amount":-5}`, employee.Id, service.Id),
		fmt.Sprintf(`{"employee_id":%q,"sale_amount":100}`, employee.Id),
		fmt.Sprintf(`{"employee_id":%q,"service_id":"no-such-service","sale_amount":100}`, employee.Id),
	}
	for _, body := range cases {
		if status, _ := postJSON(t, app, "/transaction", body); status != 422 {
			t.Errorf("body %s: status %d, want 422", body, status)
		}
	}

	var count int64
	database.DB.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected sales persisted %d transactions", count)
	}
	database.DB.Model(&models.ActivityLog{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected sales produced %d activity entries", count)
	}
}

func TestRecordSaleInactiveServiceRejected(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)
	database.DB.Model(&service).Update("active", false)

	status, body := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":100}`, employee.Id, service.Id))
	if status != 422 {
		t.Fatalf("status %d body %v", status, body)
	}
}

func TestGatewayVerifyAppliesOnce(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)

	// Record a sale leaving a 600 balance.
	if status, _ := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":1000,"amount_paid":400,"payment_method":"cash"}`,
		employee.Id, service.Id)); status != 201 {
		t.Fatal("seed sale failed")
	}
	var sale models.Sale
	if err := database.DB.First(&sale).Error; err != nil {
		t.Fatal(err)
	}

	status, out := postJSON(t, app, "/sales/"+sale.Id+"/checkout",
		`{"email":"ada@example.com","metadata":{"customer_name":"Ada Obi"}}`)
	if status != 201 {
		t.Fatalf("checkout status %d: %v", status, out)
	}
	reference, _ := out["reference"].(string)
	if reference == "" {
		t.Fatal("checkout returned no reference")
	}
	if amount, _ := out["amount"].(float64); amount != 600 {
		t.Fatalf("checkout amount %v, want the 600 balance", out["amount"])
	}

	verifyBody := fmt.Sprintf(`{"reference":%q,"status":"success"}`, reference)
	if status, out := postJSON(t, app, "/payments/verify", verifyBody); status != 200 {
		t.Fatalf("verify status %d: %v", status, out)
	}

	var updated models.Sale
	database.DB.First(&updated, "id = ?", sale.Id)
	if updated.BalanceDue != 0 || updated.PaymentStatus != models.PaymentCompleted {
		t.Fatalf("sale after verify: %+v", updated)
	}

	// Replayed callback: no second application.
	if status, _ := postJSON(t, app, "/payments/verify", verifyBody); status != 200 {
		t.Fatal("replayed verify should succeed idempotently")
	}
	var count int64
	database.DB.Model(&models.Payment{}).Where("sale_id = ?", sale.Id).Count(&count)
	if count != 2 { // initial cash payment + one gateway payment
		t.Fatalf("payment rows = %d, want 2", count)
	}
}

// The intent flip and the ledger apply commit as one unit: when the apply is
// rejected, the intent must still read pending, not successful.
func TestVerifyPaymentLedgerFailureLeavesIntentPending(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)
	if status, _ := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":1000,"amount_paid":400,"payment_method":"cash"}`,
		employee.Id, service.Id)); status != 201 {
		t.Fatal("seed sale failed")
	}
	var sale models.Sale
	database.DB.First(&sale)

	_, out := postJSON(t, app, "/sales/"+sale.Id+"/checkout", `{"email":"ada@example.com"}`)
	reference, _ := out["reference"].(string)
	if reference == "" {
		t.Fatal("checkout returned no reference")
	}

	// Settle the sale manually while the gateway intent is still open.
	if status, _ := postJSON(t, app, "/sales/"+sale.Id+"/payments", `{"amount":600,"method":"cash"}`); status != 200 {
		t.Fatal("settling payment failed")
	}

	status, _ := postJSON(t, app, "/payments/verify",
		fmt.Sprintf(`{"reference":%q,"status":"success"}`, reference))
	if status != 422 {
		t.Fatalf("verify against settled sale status %d, want 422", status)
	}

	var intent models.PaymentIntent
	if err := database.DB.First(&intent, "reference = ?", reference).Error; err != nil {
		t.Fatal(err)
	}
	if intent.Status != models.IntentPending {
		t.Fatalf("intent status %q after rolled-back verify, want pending", intent.Status)
	}
	var count int64
	database.DB.Model(&models.Payment{}).Where("sale_id = ?", sale.Id).Count(&count)
	if count != 2 {
		t.Fatalf("payment rows = %d, want 2", count)
	}
}

func TestGatewayRejectsUnknownMetadataFields(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)
	if status, _ := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":500}`, employee.Id, service.Id)); status != 201 {
		t.Fatal("seed sale failed")
	}
	var sale models.Sale
	database.DB.First(&sale)

	status, _ := postJSON(t, app, "/sales/"+sale.Id+"/checkout",
		`{"email":"ada@example.com","metadata":{"rogue_field":true}}`)
	if status != 422 {
		t.Fatalf("unknown metadata field accepted, status %d", status)
	}
}

func TestApplyPaymentEndpointOverpayment(t *testing.T) {
	app := setupApp(t)
	employee, service := seedCatalog(t)
	if status, _ := postJSON(t, app, "/transaction", fmt.Sprintf(
		`{"employee_id":%q,"service_id":%q,"sale_amount":1000,"amount_paid":400}`,
		employee.Id, service.Id)); status != 201 {
		t.Fatal("seed sale failed")
	}
	var sale models.Sale
	database.DB.First(&sale)

	if status, _ := postJSON(t, app, "/sales/"+sale.Id+"/payments", `{"amount":700,"method":"cash"}`); status != 422 {
		t.Fatalf("overpayment status %d, want 422", status)
	}
	var unchanged models.Sale
	database.DB.First(&unchanged, "id = ?", sale.Id)
	if unchanged.BalanceDue != 600 {
		t.Fatalf("balance changed on rejected overpayment: %v", unchanged.BalanceDue)
	}

	status, out := postJSON(t, app, "/sales/"+sale.Id+"/payments", `{"amount":600,"method":"cash"}`)
	if status != 200 {
		t.Fatalf("settling payment status %d: %v", status, out)
	}
	receipt, _ := out["receipt"].(map[string]any)
	if receipt["balance_remaining"].(float64) != 0 {
		t.Fatalf("receipt balance %v, want 0", receipt["balance_remaining"])
	}
}
