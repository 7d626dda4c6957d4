package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
)

// sample menu inserted by the seed endpoint
var seedFoods = []model.Food{
    {Name: "Pho Bo", Price: 65000, Description: "Beef noodle soup with fresh herbs", IsActive: true},
    {Name: "Banh Mi", Price: 35000, Description: "Crispy baguette with grilled pork and pickles", IsActive: true},
    {Name: "Bun Cha", Price: 55000, Description: "Grilled pork patties with vermicelli", IsActive: true},
    {Name: "Goi Cuon", Price: 40000, Description: "Fresh spring rolls with shrimp", IsActive: true},
    {Name: "Com Tam", Price: 50000, Description: "Broken rice with grilled pork chop", IsActive: true},
    {Name: "Ca Phe Sua Da", Price: 25000, Description: "Vietnamese iced milk coffee", IsActive: true},
}

// SeedHandler populates an empty menu with sample dishes.  It refuses to run
// twice so real data is never mixed with samples.
type SeedHandler struct {
    Foods *repository.FoodRepo
}

func NewSeedHandler(foods *repository.FoodRepo) *SeedHandler {
    return &SeedHandler{Foods: foods}
}

// Run handles POST /api/admin/seed.
func (h *SeedHandler) Run(c echo.Context) error {
    ctx := c.Request().Context()
    count, err := h.Foods.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if count > 0 {
        return c.JSON(http.StatusConflict, echo.Map{"error": "menu already has foods, seed skipped"})
    }
    inserted := 0
    for i := range seedFoods {
        f := seedFoods[i]
        if _, err := h.Foods.Create(ctx, &f); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed failed"})
        }
        inserted++
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "seed complete", "inserted": inserted})
}
