package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
)

func queryBool(c *fiber.Ctx, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func queryDecimal(c *fiber.Ctx, key string) *decimal.Decimal {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Page: c.QueryInt("page", 0), Limit: c.QueryInt("limit", 0)}
	p.Normalize()
	return p
}

func pageResponse(p dto.PageRequest, total int, fromCache bool) dto.PageResponse {
	return dto.PageResponse{Page: p.Page, Limit: p.Limit, Total: total, FromCache: fromCache}
}
