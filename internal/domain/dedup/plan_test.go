package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/products"
)

func TestChooseCanonical(t *testing.T) {
	t.Parallel()

	members := []Member{
		{ProductID: 1, InventoryID: 5, Stock: 10, HasInventory: true},
		{ProductID: 2, InventoryID: 9, Stock: 3, HasInventory: true},
		{ProductID: 3, InventoryID: 2, Stock: 100, HasInventory: true},
	}

	// Наибольший инвентарный id выигрывает, запас роли не играет.
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}, {2, 0, 1}, {0, 2, 1}, {1, 2, 0}}
	for _, perm := range perms {
		shuffled := []Member{members[perm[0]], members[perm[1]], members[perm[2]]}
		got := ChooseCanonical(shuffled)
		assert.Equal(t, int64(2), got.ProductID, "order %v", perm)
	}
}

func TestChooseCanonicalTieBreakers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []Member
		want    int64
	}{
		{
			name: "equal inventory id, higher stock wins",
			members: []Member{
				{ProductID: 1, InventoryID: 7, Stock: 5, HasInventory: true},
				{ProductID: 2, InventoryID: 7, Stock: 50, HasInventory: true},
			},
			want: 2,
		},
		{
			name: "equal inventory id and stock, higher product id wins",
			members: []Member{
				{ProductID: 4, InventoryID: 7, Stock: 5, HasInventory: true},
				{ProductID: 3, InventoryID: 7, Stock: 5, HasInventory: true},
			},
			want: 4,
		},
		{
			name: "member without inventory loses to any with one",
			members: []Member{
				{ProductID: 9},
				{ProductID: 1, InventoryID: 1, Stock: 0, HasInventory: true},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseCanonical(tt.members).ProductID)
		})
	}
}

func TestBuildGroupsSodaCola(t *testing.T) {
	t.Parallel()

	// "Soda/Cola/500ml" трижды у одного пользователя; у товара 14 самая
	// свежая инвентарная строка — он и канонический.
	prods := []products.Product{
		{ID: 10, UserID: 7, Name: "Soda", Variety: "Cola", Size: "500ml"},
		{ID: 14, UserID: 7, Name: "soda ", Variety: " cola", Size: "500ml"},
		{ID: 21, UserID: 7, Name: "SODA", Variety: "Cola", Size: "500ml"},
		{ID: 30, UserID: 7, Name: "Soda", Variety: "Orange", Size: "500ml"},
		{ID: 31, UserID: 8, Name: "Soda", Variety: "Cola", Size: "500ml"}, // другой пользователь
	}
	invs := map[int64]Member{
		10: {ProductID: 10, InventoryID: 3, Stock: 12, HasInventory: true},
		14: {ProductID: 14, InventoryID: 8, Stock: 1, HasInventory: true},
		21: {ProductID: 21, InventoryID: 5, Stock: 40, HasInventory: true},
	}

	groups := BuildGroups(prods, invs)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, int64(14), g.Canonical.ProductID)
	require.Len(t, g.Duplicates, 2)

	var dupIDs []int64
	for _, d := range g.Duplicates {
		dupIDs = append(dupIDs, d.ProductID)
	}
	assert.ElementsMatch(t, []int64{10, 21}, dupIDs)
	assert.Equal(t, products.Key{UserID: 7, Name: "soda", Variety: "cola", Size: "500ml"}, g.Key)
}

func TestBuildGroupsNoDuplicates(t *testing.T) {
	t.Parallel()

	prods := []products.Product{
		{ID: 1, UserID: 1, Name: "Bread"},
		{ID: 2, UserID: 1, Name: "Milk"},
	}
	assert.Empty(t, BuildGroups(prods, nil))
}

func TestInventoryAction(t *testing.T) {
	t.Parallel()

	canon := Member{ProductID: 1, HasInventory: true}
	bare := Member{ProductID: 2}

	assert.Equal(t, "none", InventoryAction(canon, bare))
	assert.Equal(t, "delete", InventoryAction(canon, Member{ProductID: 3, HasInventory: true}))
	assert.Equal(t, "repoint", InventoryAction(bare, Member{ProductID: 3, HasInventory: true}))
}

func TestSortMembers(t *testing.T) {
	t.Parallel()

	in := []Member{
		{ProductID: 1, InventoryID: 2, HasInventory: true},
		{ProductID: 2, InventoryID: 9, HasInventory: true},
		{ProductID: 3, InventoryID: 5, HasInventory: true},
	}
	got := SortMembers(in)
	assert.Equal(t, int64(2), got[0].ProductID)
	assert.Equal(t, int64(3), got[1].ProductID)
	assert.Equal(t, int64(1), got[2].ProductID)
	// исходный срез не меняется
	assert.Equal(t, int64(1), in[0].ProductID)
}
