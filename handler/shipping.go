package handler

import (
	"babyboo_store/constants"
	"babyboo_store/model"
	"babyboo_store/utils"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GHN (Giao Hàng Nhanh) – adapter mỏng, chỉ map input/output và áp default,
// thuật toán tính cước là của carrier

type GHN struct {
	Token   string
	ShopID  int
	BaseURL string
	client  *http.Client
}

func NewGHN() *GHN {
	shopID, _ := strconv.Atoi(os.Getenv("GHN_SHOP_ID"))
	baseURL := os.Getenv("GHN_URL")
	if baseURL == "" {
		baseURL = "https://online-gateway.ghn.vn/shiip/public-api"
	}
	return &GHN{
		Token:   os.Getenv("GHN_TOKEN"),
		ShopID:  shopID,
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ghnEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (g *GHN) call(method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, g.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", g.Token)
	req.Header.Set("ShopId", strconv.Itoa(g.ShopID))

	resp, err := g.client.Do(req)
	if err != nil {
		return model.ErrShippingUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ErrShippingUnavailable
	}

	var envelope ghnEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return model.ErrShippingUnavailable
	}
	if envelope.Code != 200 {
		return fmt.Errorf("%w: GHN trả về code %d (%s)", model.ErrShippingUnavailable, envelope.Code, envelope.Message)
	}
	return json.Unmarshal(envelope.Data, out)
}

func (g *GHN) ListProvinces() ([]model.GHNProvince, error) {
	var provinces []model.GHNProvince
	if err := g.call(http.MethodGet, "/master-data/province", nil, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

func (g *GHN) ListDistricts(provinceID int) ([]model.GHNDistrict, error) {
	var districts []model.GHNDistrict
	payload := map[string]int{"province_id": provinceID}
	if err := g.call(http.MethodPost, "/master-data/district", payload, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

func (g *GHN) ListWards(districtID int) ([]model.GHNWard, error) {
	var wards []model.GHNWard
	payload := map[string]int{"district_id": districtID}
	if err := g.call(http.MethodPost, "/master-data/ward", payload, &wards); err != nil {
		return nil, err
	}
	return wards, nil
}

func (g *GHN) ListServices(fromDistrict, toDistrict int) ([]model.GHNService, error) {
	var services []model.GHNService
	payload := map[string]int{
		"shop_id":       g.ShopID,
		"from_district": fromDistrict,
		"to_district":   toDistrict,
	}
	if err := g.call(http.MethodPost, "/v2/shipping-order/available-services", payload, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Quote tính phí cho một gói hàng; thiếu cân nặng/kích thước thì áp default
func (g *GHN) Quote(input model.ShippingQuoteInput) (*model.ShippingQuote, error) {
	if input.Weight <= 0 {
		input.Weight = constants.DEFAULT_PARCEL_WEIGHT
	}
	if input.Length <= 0 {
		input.Length = constants.DEFAULT_PARCEL_LENGTH
	}
	if input.Width <= 0 {
		input.Width = constants.DEFAULT_PARCEL_WIDTH
	}
	if input.Height <= 0 {
		input.Height = constants.DEFAULT_PARCEL_HEIGHT
	}
	if input.FromDistrictID == 0 {
		input.FromDistrictID, _ = strconv.Atoi(os.Getenv("GHN_FROM_DISTRICT"))
	}
	if input.FromWardCode == "" {
		input.FromWardCode = os.Getenv("GHN_FROM_WARD")
	}

	payload := map[string]any{
		"service_id":       input.ServiceID,
		"from_district_id": input.FromDistrictID,
		"from_ward_code":   input.FromWardCode,
		"to_district_id":   input.ToDistrictID,
		"to_ward_code":     input.ToWardCode,
		"weight":           input.Weight,
		"length":           input.Length,
		"width":            input.Width,
		"height":           input.Height,
	}

	var fee struct {
		Total int64 `json:"total"`
	}
	if err := g.call(http.MethodPost, "/v2/shipping-order/fee", payload, &fee); err != nil {
		return nil, err
	}

	quote := &model.ShippingQuote{
		ServiceID: input.ServiceID,
		Fee:       decimal.NewFromInt(fee.Total),
	}

	// Leadtime là best-effort, lỗi không làm hỏng báo giá
	var leadtime struct {
		Leadtime int64 `json:"leadtime"`
	}
	ltPayload := map[string]any{
		"from_district_id": input.FromDistrictID,
		"from_ward_code":   input.FromWardCode,
		"to_district_id":   input.ToDistrictID,
		"to_ward_code":     input.ToWardCode,
		"service_id":       input.ServiceID,
	}
	if err := g.call(http.MethodPost, "/v2/shipping-order/leadtime", ltPayload, &leadtime); err == nil {
		quote.EstimatedDelivery = &leadtime.Leadtime
	}

	return quote, nil
}

// === Fiber handlers ===

func GetProvinces(c *fiber.Ctx) error {
	provinces, err := NewGHN().ListProvinces()
	if err != nil {
		return utils.ErrorResponse(c, 502, "Chưa tính được phí vận chuyển, thử lại sau", err)
	}
	return utils.SuccessResponse(c, 200, provinces)
}

func GetDistricts(c *fiber.Ctx) error {
	provinceId := c.QueryInt("provinceId")
	if provinceId == 0 {
		return utils.ErrorResponse(c, 400, "provinceId là bắt buộc", nil)
	}
	districts, err := NewGHN().ListDistricts(provinceId)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Chưa tính được phí vận chuyển, thử lại sau", err)
	}
	return utils.SuccessResponse(c, 200, districts)
}

func GetWards(c *fiber.Ctx) error {
	districtId := c.QueryInt("districtId")
	if districtId == 0 {
		return utils.ErrorResponse(c, 400, "districtId là bắt buộc", nil)
	}
	wards, err := NewGHN().ListWards(districtId)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Chưa tính được phí vận chuyển, thử lại sau", err)
	}
	return utils.SuccessResponse(c, 200, wards)
}

func GetShippingServices(c *fiber.Ctx) error {
	toDistrict := c.QueryInt("toDistrict")
	if toDistrict == 0 {
		return utils.ErrorResponse(c, 400, "toDistrict là bắt buộc", nil)
	}
	fromDistrict := c.QueryInt("fromDistrict")
	if fromDistrict == 0 {
		fromDistrict, _ = strconv.Atoi(os.Getenv("GHN_FROM_DISTRICT"))
	}

	services, err := NewGHN().ListServices(fromDistrict, toDistrict)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Chưa tính được phí vận chuyển, thử lại sau", err)
	}
	return utils.SuccessResponse(c, 200, services)
}

func GetShippingQuote(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ShippingQuoteInput)

	quote, err := NewGHN().Quote(input)
	if err != nil {
		// Caller giữ nguyên phí cũ, không phải lỗi cứng
		return utils.ErrorResponse(c, 502, "Chưa tính được phí vận chuyển, thử lại sau", err)
	}
	return utils.SuccessResponse(c, 200, quote)
}
