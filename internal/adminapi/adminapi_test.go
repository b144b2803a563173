package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instashop/internal/catalog"
	"instashop/internal/export"
	"instashop/internal/ordering"
	"instashop/internal/store"
)

type testApp struct {
	st  store.Store
	cat *catalog.Manager
	rec *ordering.Recorder
	exp *export.Exporter
}

func (a *testApp) Store() store.Store           { return a.st }
func (a *testApp) Catalog() *catalog.Manager    { return a.cat }
func (a *testApp) Recorder() *ordering.Recorder { return a.rec }
func (a *testApp) Exporter() *export.Exporter   { return a.exp }
func (a *testApp) ReloadDelaySeconds() int      { return 2 }

func setup(t *testing.T) *testApp {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	st := store.NewMemory()
	cat := catalog.NewManager(st, node)
	require.NoError(t, cat.Bootstrap())
	fixture := &testApp{
		st:  st,
		cat: cat,
		rec: ordering.NewRecorder(st, node, false),
		exp: export.New(),
	}
	app = fixture
	return fixture
}

func request(t *testing.T, method, path, body string, h echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestPlaceOrderEndpoint(t *testing.T) {
	fixture := setup(t)

	rec := request(t, http.MethodPost, "/api/orders",
		`{"productId":"1","size":"S","instagramUsername":"@alice"}`, placeOrder)
	assert.Equal(t, http.StatusOK, rec.Code)

	products, err := fixture.st.Products()
	require.NoError(t, err)
	assert.Equal(t, 9, products[0].Sizes[0].Stock)

	t.Run("missing username", func(t *testing.T) {
		rec := request(t, http.MethodPost, "/api/orders",
			`{"productId":"1","size":"S"}`, placeOrder)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := request(t, http.MethodPost, "/api/orders",
			`{"productId":"404","size":"S","instagramUsername":"x"}`, placeOrder)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("out of stock", func(t *testing.T) {
		require.NoError(t, fixture.cat.AdjustStock("1", "S", -9))
		rec := request(t, http.MethodPost, "/api/orders",
			`{"productId":"1","size":"S","instagramUsername":"@alice"}`, placeOrder)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestProductEndpoints(t *testing.T) {
	setup(t)

	rec := request(t, http.MethodGet, "/api/products/1", "", getProduct, "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, http.MethodGet, "/api/products/404", "", getProduct, "id", "404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, http.MethodPost, "/api/products",
		`{"name":"","price":10}`, createProduct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, http.MethodPost, "/api/products",
		`{"name":"Mont","price":899.9,"sizes":[{"name":"M","stock":4}]}`, createProduct)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, http.MethodDelete, "/api/products/2", "", deleteProduct, "id", "2")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = request(t, http.MethodDelete, "/api/products/2", "", deleteProduct, "id", "2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersSorted(t *testing.T) {
	fixture := setup(t)
	_, err := fixture.rec.PlaceOrder("1", "S", "@alice")
	require.NoError(t, err)
	_, err = fixture.rec.PlaceOrder("2", "30", "bora")
	require.NoError(t, err)

	rec := request(t, http.MethodGet, "/api/orders?sort=instagramUsername&order=asc", "", listOrders)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []struct {
			InstagramUsername string `json:"instagramUsername"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "@alice", envelope.Data[0].InstagramUsername)

	t.Run("bogus sort field", func(t *testing.T) {
		rec := request(t, http.MethodGet, "/api/orders?sort=bogus", "", listOrders)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSiteNameEndpoints(t *testing.T) {
	setup(t)

	rec := request(t, http.MethodPut, "/api/sitename", `{"siteName":"Butik 34"}`, setSiteName)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, http.MethodGet, "/api/sitename", "", getSiteName)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Butik 34")

	rec = request(t, http.MethodPut, "/api/sitename", `{"siteName":""}`, setSiteName)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoints(t *testing.T) {
	fixture := setup(t)
	_, err := fixture.rec.PlaceOrder("1", "S", "@alice")
	require.NoError(t, err)

	rec := request(t, http.MethodGet, "/api/export/orders.xlsx", "", exportOrders)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "siparisler.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = request(t, http.MethodGet, "/api/export/orders.csv", "", exportOrdersCSV)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Instagram Kullanıcı Adı")

	// product 2 has no orders yet
	rec = request(t, http.MethodGet, "/api/export/products/2/orders.xlsx", "", exportProductOrders, "id", "2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
