package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/usecase"
)

// priceBound keeps a price filter as text. It accepts a JSON string, a JSON
// number or null.
type priceBound string

func (p *priceBound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = priceBound(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("price bound must be a string or a number")
	}
	*p = priceBound(n.String())
	return nil
}

// searchRequest is the JSON search envelope.
type searchRequest struct {
	SearchQuery        string     `json:"searchQuery"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	MinPrice           priceBound `json:"minPrice"`
	MaxPrice           priceBound `json:"maxPrice"`
	SelectedCategories []string   `json:"selectedCategories"`
	SortOrder          string     `json:"sortOrder"`
	Page               *int       `json:"page"`
	ItemsPerPage       *int       `json:"itemsPerPage"`
}

func (req searchRequest) toDomain(defaultItemsPerPage int) (domain.FilterSpec, domain.PageRequest, error) {
	spec := domain.FilterSpec{
		SearchQuery:        req.SearchQuery,
		MinPrice:           string(req.MinPrice),
		MaxPrice:           string(req.MaxPrice),
		SelectedCategories: req.SelectedCategories,
		SortOrder:          domain.SortOrder(req.SortOrder),
	}
	if spec.SortOrder == "" {
		spec.SortOrder = domain.DefaultSortOrder
	}

	var err error
	if spec.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return domain.FilterSpec{}, domain.PageRequest{}, err
	}
	if spec.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return domain.FilterSpec{}, domain.PageRequest{}, err
	}

	page := domain.PageRequest{Page: 1, ItemsPerPage: defaultItemsPerPage}
	if req.Page != nil {
		page.Page = *req.Page
	}
	if req.ItemsPerPage != nil {
		page.ItemsPerPage = *req.ItemsPerPage
	}
	return spec, page, nil
}

func parseOptionalDate(raw string) (*domain.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeSearchBody reads the JSON envelope. An empty body is an empty envelope.
func decodeSearchBody(body io.Reader) (searchRequest, error) {
	var req searchRequest
	err := json.NewDecoder(body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return req, nil
}

// searchRequestFromQuery reads the envelope from a query string. categories may
// be repeated or comma-separated; selectedCategories is accepted as an alias.
func searchRequestFromQuery(q url.Values) (searchRequest, error) {
	req := searchRequest{
		SearchQuery: firstOf(q, "searchQuery", "q"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
		MinPrice:    priceBound(q.Get("minPrice")),
		MaxPrice:    priceBound(q.Get("maxPrice")),
		SortOrder:   q.Get("sortOrder"),
	}
	for _, key := range []string{"categories", "selectedCategories"} {
		for _, v := range q[key] {
			for _, c := range strings.Split(v, ",") {
				if c = strings.TrimSpace(c); c != "" {
					req.SelectedCategories = append(req.SelectedCategories, c)
				}
			}
		}
	}

	var err error
	if req.Page, err = optionalInt(q, "page"); err != nil {
		return req, err
	}
	if req.ItemsPerPage, err = optionalInt(q, "itemsPerPage"); err != nil {
		return req, err
	}
	return req, nil
}

func firstOf(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrValidation, key, raw)
	}
	return &n, nil
}

// createRequest is the JSON body of a create call. Image data is base64 or a
// base64 data URI.
type createRequest struct {
	Name     string         `json:"name"`
	Price    *float64       `json:"price"`
	Category string         `json:"category"`
	Images   []imagePayload `json:"images"`
}

type imagePayload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

func (req createRequest) toInput() (usecase.CreateProductInput, error) {
	if req.Price == nil {
		return usecase.CreateProductInput{}, fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	in := usecase.CreateProductInput{Name: req.Name, Price: *req.Price, Category: req.Category}
	for i, img := range req.Images {
		data, contentType, err := decodeImageData(img.Data)
		if err != nil {
			return usecase.CreateProductInput{}, fmt.Errorf("%w: image %d: %v", domain.ErrValidation, i+1, err)
		}
		if img.ContentType != "" {
			contentType = img.ContentType
		}
		in.Images = append(in.Images, usecase.ImageUpload{FileName: img.FileName, ContentType: contentType, Data: data})
	}
	return in, nil
}

func decodeCreateBody(body io.Reader) (createRequest, error) {
	var req createRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return req, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return req, nil
}

// decodeImageData decodes plain base64 or a "data:<type>;base64,<data>" URI.
func decodeImageData(raw string) (data []byte, contentType string, err error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:") {
		meta, payload, ok := strings.Cut(raw[len("data:"):], ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, "", errors.New("data URI must be base64 encoded")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		raw = payload
	}
	data, err = base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", errors.New("invalid base64 data")
	}
	return data, contentType, nil
}

// createInputFromMultipart reads name, price and category fields plus any
// number of "images" file parts.
func createInputFromMultipart(r *http.Request, maxMemory int64) (usecase.CreateProductInput, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return usecase.CreateProductInput{}, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrValidation, err)
	}
	rawPrice := strings.TrimSpace(r.FormValue("price"))
	if rawPrice == "" {
		return usecase.CreateProductInput{}, fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return usecase.CreateProductInput{}, fmt.Errorf("%w: price must be a number, got %q", domain.ErrValidation, rawPrice)
	}

	in := usecase.CreateProductInput{
		Name:     r.FormValue("name"),
		Price:    price,
		Category: r.FormValue("category"),
	}
	for _, fh := range r.MultipartForm.File["images"] {
		img, err := readFormFile(fh)
		if err != nil {
			return usecase.CreateProductInput{}, fmt.Errorf("%w: image %q: %v", domain.ErrValidation, fh.Filename, err)
		}
		in.Images = append(in.Images, img)
	}
	return in, nil
}

func readFormFile(fh *multipart.FileHeader) (usecase.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.ImageUpload{}, err
	}
	return usecase.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
