//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/query"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	_ = resource.Expire(300)

	cfg := &config.MongoConfig{
		URI:            fmt.Sprintf("mongodb://root:password@%s/?authSource=admin", resource.GetHostPort("27017/tcp")),
		ConnectTimeout: 10 * time.Second,
	}

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var errRetry error
		client, errRetry = NewMongoDBConnection(context.Background(), cfg)
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	testDB = client.Database("catalog_integration")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func newTestRepo(t *testing.T) *ProductRepository {
	t.Helper()
	name := fmt.Sprintf("products_%d", time.Now().UnixNano())
	repo, err := NewProductRepository(context.Background(), testDB, name, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = testDB.Collection(name).Drop(context.Background()) })
	return repo
}

func seedProducts(t *testing.T, repo *ProductRepository, n int) []*domain.Product {
	t.Helper()
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	categories := []string{"shoes", "bags", "hats"}
	out := make([]*domain.Product, n)
	for i := 0; i < n; i++ {
		p := &domain.Product{
			Name:      fmt.Sprintf("Product %02d", i),
			Price:     float64(i%5) * 10,
			Category:  categories[i%len(categories)],
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}
		require.NoError(t, repo.Create(context.Background(), p))
		out[i] = p
	}
	return out
}

func TestProductRepository_CRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Trail Shoe", Price: 89.5, Category: "shoes", Images: []string{"http://img/1.png"}}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Images, got.Images)

	_, err = repo.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrProductNotFound)
}

func TestProductRepository_SearchPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, repo, 25)

	pred, order := query.NewBuilder(time.UTC).Build(domain.FilterSpec{})
	total, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)

	w, err := domain.Paginate(total, 3, 10)
	require.NoError(t, err)
	page, err := repo.Find(ctx, pred, order, w.Skip, w.Limit)
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.EqualValues(t, 3, w.TotalPages)

	w, err = domain.Paginate(total, 100, 10)
	require.NoError(t, err)
	page, err = repo.Find(ctx, pred, order, w.Skip, w.Limit)
	require.NoError(t, err)
	assert.Empty(t, page)

	w, err = domain.Paginate(total, math.MaxInt64, 10)
	require.NoError(t, err)
	page, err = repo.Find(ctx, pred, order, w.Skip, w.Limit)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestProductRepository_FiltersAndSort(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, repo, 15)

	pred, order := query.NewBuilder(time.UTC).Build(domain.FilterSpec{
		SelectedCategories: []string{"shoes", "bags"},
		StartDate:          &domain.Date{Year: 2024, Month: time.March, Day: 3},
		EndDate:            &domain.Date{Year: 2024, Month: time.March, Day: 12},
		MinPrice:           "abc",
		SortOrder:          domain.SortPriceLowHigh,
	})

	products, err := repo.Find(ctx, pred, order, 0, 50)
	require.NoError(t, err)
	n, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	assert.EqualValues(t, len(products), n)
	require.NotEmpty(t, products)

	from := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 12, 23, 59, 59, 999_000_000, time.UTC)
	for i, p := range products {
		assert.NotEqual(t, "hats", p.Category)
		assert.False(t, p.CreatedAt.Before(from) || p.CreatedAt.After(to))
		if i > 0 {
			assert.LessOrEqual(t, products[i-1].Price, p.Price)
		}
	}

	again, err := repo.Find(ctx, pred, order, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, products, again)
}

func TestProductRepository_SearchTextIsLiteral(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Bottle (1.5L)", Price: 3}))
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Bottle 105L", Price: 3}))

	pred, _ := query.NewBuilder(nil).Build(domain.FilterSpec{SearchQuery: "(1.5l)"})
	n, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestProductRepository_Categories(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, repo, 6)
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Loose item", Price: 1}))

	got, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bags", "hats", "shoes"}, got)
}
