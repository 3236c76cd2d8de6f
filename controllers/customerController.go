package controllers

import (
	"backoffice-backend/database"
	"backoffice-backend/models"

	"github.com/gofiber/fiber/v2"
)

func CreateCustomer(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	if data["name"] == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer name is required")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	customer := models.Customer{
		BusinessID: database.BusinessID(c),
		Name:       data["name"],
		Phone:      data["phone"],
		Email:      data["email"],
		Address:    data["address"],
	}
	if err := db.Create(&customer).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create customer")
	}
	return c.Status(201).JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var customers []models.Customer
	if err := db.Where("business_id = ?", database.BusinessID(c)).Order("name").Find(&customers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load customers")
	}
	return c.JSON(fiber.Map{"customers": customers, "message": "success"})
}

func UpdateCustomer(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	updates := map[string]any{}
	for _, field := range []string{"name", "phone", "email", "address"} {
		if v, ok := data[field]; ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := db.Model(&models.Customer{}).
		Where("id = ? AND business_id = ?", c.Params("id"), database.BusinessID(c)).
		Updates(updates)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update customer")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "customer not found")
	}

	var customer models.Customer
	db.First(&customer, "id = ?", c.Params("id"))
	return c.JSON(customer)
}
