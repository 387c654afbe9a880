package catalog

import (
	"reflect"
	"testing"

	"github.com/matst80/shophub-catalog/pkg/types"
)

func testProducts() []types.Product {
	return []types.Product{
		{Id: 1, Title: "Apple", Description: "Fresh fruit", Category: "fruit", Price: 10, Rating: types.Rating{Rate: 4.5, Count: 10}},
		{Id: 2, Title: "Banana", Description: "Ripe and sweet", Category: "fruit", Price: 5, Rating: types.Rating{Rate: 3, Count: 50}},
		{Id: 3, Title: "Carrot", Description: "Crunchy vegetable", Category: "vegetable", Price: 2, Seller: "GreenGrocer", Rating: types.Rating{Rate: 4, Count: 20}},
		{Id: 4, Title: "Desk Lamp", Description: "Warm light for late nights", Category: "home", Price: 25, Seller: "BrightCo", Rating: types.Rating{Rate: 4.8, Count: 200}},
	}
}

func titles(products []types.Product) []string {
	result := make([]string, len(products))
	for i, p := range products {
		result[i] = p.Title
	}
	return result
}

func TestIdentityFilterReturnsEverything(t *testing.T) {
	products := testProducts()
	state := types.DefaultQueryState(Summarize(products).Price)

	result := Query(products, &state)
	if len(result) != len(products) {
		t.Fatalf("expected %d products, got %d", len(products), len(result))
	}
	expected := []string{"Apple", "Banana", "Carrot", "Desk Lamp"}
	if !reflect.DeepEqual(titles(result), expected) {
		t.Errorf("expected name ascending order %v, got %v", expected, titles(result))
	}
}

func TestMinRatingFilter(t *testing.T) {
	products := []types.Product{
		{Id: 1, Title: "Apple", Price: 10, Category: "fruit", Rating: types.Rating{Rate: 4.5, Count: 10}},
		{Id: 2, Title: "Banana", Price: 5, Category: "fruit", Rating: types.Rating{Rate: 3, Count: 50}},
	}
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetMinRating(4)

	result := Query(products, &state)
	if len(result) != 1 || result[0].Id != 1 {
		t.Errorf("expected only product 1, got %v", titles(result))
	}
}

func TestSortByPriceAscending(t *testing.T) {
	products := []types.Product{
		{Id: 1, Title: "Apple", Price: 10, Category: "fruit", Rating: types.Rating{Rate: 4.5, Count: 10}},
		{Id: 2, Title: "Banana", Price: 5, Category: "fruit", Rating: types.Rating{Rate: 3, Count: 50}},
	}
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetSort(types.SortByPrice, types.SortAsc)

	result := Query(products, &state)
	expected := []string{"Banana", "Apple"}
	if !reflect.DeepEqual(titles(result), expected) {
		t.Errorf("expected %v, got %v", expected, titles(result))
	}
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	products := testProducts()
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetSearchText("SWEET")

	result := Query(products, &state)
	if len(result) != 1 || result[0].Title != "Banana" {
		t.Errorf("expected description match on Banana, got %v", titles(result))
	}
}

func TestSellerFilterUsesPlaceholder(t *testing.T) {
	products := testProducts()
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetSeller(types.UnknownSeller)

	result := Query(products, &state)
	if len(result) != 2 {
		t.Errorf("expected the two sellerless products, got %v", titles(result))
	}
}

func TestPriceRangeIsInclusive(t *testing.T) {
	products := testProducts()
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetMinPrice(5)
	state.SetMaxPrice(10)

	result := Query(products, &state)
	expected := []string{"Apple", "Banana"}
	if !reflect.DeepEqual(titles(result), expected) {
		t.Errorf("expected %v, got %v", expected, titles(result))
	}
}

func TestDescendingIsReverseOfAscendingOnTies(t *testing.T) {
	products := []types.Product{
		{Id: 1, Title: "Apple", Price: 10, Category: "fruit", Rating: types.Rating{Rate: 4, Count: 5}},
		{Id: 2, Title: "Banana", Price: 10, Category: "fruit", Rating: types.Rating{Rate: 4, Count: 5}},
		{Id: 3, Title: "Carrot", Price: 2, Category: "vegetable", Rating: types.Rating{Rate: 4, Count: 5}},
	}
	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetSort(types.SortByPrice, types.SortAsc)
	asc := Query(products, &state)

	state.SetSort(types.SortByPrice, types.SortDesc)
	desc := Query(products, &state)

	for i := range asc {
		if asc[i].Id != desc[len(desc)-1-i].Id {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", titles(asc), titles(desc))
		}
	}
}

func TestQueryDoesNotMutateInputs(t *testing.T) {
	products := testProducts()
	original := make([]types.Product, len(products))
	copy(original, products)

	state := types.DefaultQueryState(Summarize(products).Price)
	state.SetSort(types.SortByPrice, types.SortDesc)
	Query(products, &state)

	if !reflect.DeepEqual(products, original) {
		t.Error("query mutated the input collection")
	}
	if state.SortKey != types.SortByPrice || state.SortDirection != types.SortDesc {
		t.Error("query mutated the query state")
	}
}

func TestResetThenQueryMatchesDefaultView(t *testing.T) {
	products := testProducts()
	bounds := Summarize(products).Price

	state := types.DefaultQueryState(bounds)
	state.SetSearchText("lamp")
	state.SetCategory("home")
	state.SetMinRating(4.5)
	state.SetSort(types.SortByReviews, types.SortDesc)
	state.SetMinPrice(20)

	state.Reset(bounds)
	result := Query(products, &state)

	defaultState := types.DefaultQueryState(bounds)
	expected := Query(products, &defaultState)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("reset view differs from default view: %v vs %v", titles(result), titles(expected))
	}
}

func TestEmptyCollectionQuery(t *testing.T) {
	state := types.DefaultQueryState(Summarize(nil).Price)
	result := Query(nil, &state)
	if len(result) != 0 {
		t.Errorf("expected empty result, got %d items", len(result))
	}
}
