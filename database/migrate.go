package database

import (
	"fmt"

	"backoffice-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Composite indexes (payments, activity log)
// - Basic CHECK constraints on ledger figures
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Business{},
			&models.Customer{},
			&models.Service{},
			&models.Employee{},
			&models.Transaction{},
			&models.Sale{},
			&models.SaleItem{},
			&models.Payment{},
			&models.Contract{},
			&models.ActivityLog{},
			&models.PaymentIntent{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE services        ALTER COLUMN base_price        TYPE numeric(12,2)`,
			`ALTER TABLE employees       ALTER COLUMN fixed_commission  TYPE numeric(12,2)`,
			`ALTER TABLE transactions    ALTER COLUMN total_amount      TYPE numeric(12,2)`,
			`ALTER TABLE transactions    ALTER COLUMN commission_amount TYPE numeric(12,2)`,
			`ALTER TABLE transactions    ALTER COLUMN house_amount      TYPE numeric(12,2)`,
			`ALTER TABLE sales           ALTER COLUMN total_amount      TYPE numeric(12,2)`,
			`ALTER TABLE sales           ALTER COLUMN discount_amount   TYPE numeric(12,2)`,
			`ALTER TABLE sales           ALTER COLUMN amount_paid       TYPE numeric(12,2)`,
			`ALTER TABLE sales           ALTER COLUMN balance_due       TYPE numeric(12,2)`,
			`ALTER TABLE sale_items      ALTER COLUMN unit_price        TYPE numeric(12,2)`,
			`ALTER TABLE sale_items      ALTER COLUMN total             TYPE numeric(12,2)`,
			`ALTER TABLE payments        ALTER COLUMN amount            TYPE numeric(12,2)`,
			`ALTER TABLE payment_intents ALTER COLUMN amount            TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_sale_created ON payments (sale_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_sales_business_balance ON sales (business_id, balance_due)`,
			`CREATE INDEX IF NOT EXISTS idx_activity_logs_business_created ON activity_logs (business_id, created_at)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_intents_reference ON payment_intents (reference)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- CHECK constraints guarding the ledger invariants at the store ---
		checks := []struct{ table, name, expr string }{
			{"sales", "chk_sales_amount_paid_nonneg", "amount_paid >= 0"},
			{"sales", "chk_sales_balance_nonneg", "balance_due >= 0"},
			{"payments", "chk_payments_amount_positive", "amount > 0"},
			{"employees", "chk_employees_percentage_range", "commission_percentage >= 0 AND commission_percentage <= 100"},
			{"employees", "chk_employees_fixed_nonneg", "fixed_commission >= 0"},
			{"services", "chk_services_price_nonneg", "base_price >= 0"},
		}
		for _, chk := range checks {
			stmt := fmt.Sprintf(`DO $$ BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
					ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
				END IF;
			END $$;`, chk.name, chk.table, chk.name, chk.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on %s: %w", chk.name, err)
			}
		}

		return nil
	})
}
