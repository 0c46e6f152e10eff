package viewer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"Storefront/internal/viewer"
)

const cardMarker = `class="product-card"`

func renderHTML(t *testing.T, s viewer.Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, viewer.RenderHTML(&buf, s))
	return buf.String()
}

func TestRenderHTML_LoadedOneCardPerProductInOrder(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{Status: viewer.StatusLoaded, Products: fixture})

	require.Equal(t, len(fixture), strings.Count(html, cardMarker))
	require.Equal(t, len(fixture), strings.Count(html, ">Buy Now</button>"))

	last := -1
	for _, p := range fixture {
		i := strings.Index(html, "<h3>"+p.Name+"</h3>")
		require.Greater(t, i, last, "product %s out of order", p.Name)
		last = i
	}
	require.Contains(t, html, "Price: $1200")
	require.Contains(t, html, "Price: $25")
	require.Contains(t, html, "Price: $45")
	require.NotContains(t, html, `http-equiv="refresh"`)
}

func TestRenderHTML_EmptyCatalog(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{Status: viewer.StatusLoaded, Products: []viewer.Product{}})

	require.Zero(t, strings.Count(html, cardMarker))
	require.Contains(t, html, "Product List")
}

func TestRenderHTML_Loading(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{Status: viewer.StatusLoading})

	require.Contains(t, html, "Loading products... ⏳")
	require.Contains(t, html, `http-equiv="refresh"`)
	require.Zero(t, strings.Count(html, cardMarker))
}

func TestRenderHTML_Failed(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{Status: viewer.StatusFailed, Err: viewer.FetchFailedMessage})

	require.Contains(t, html, "Error: "+viewer.FetchFailedMessage)
	require.Zero(t, strings.Count(html, cardMarker))
	require.NotContains(t, html, "Loading products")
}

func TestRenderHTML_EscapesNames(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{
		Status:   viewer.StatusLoaded,
		Products: []viewer.Product{{ID: 9, Name: "<script>x</script>", Price: 1}},
	})

	require.NotContains(t, html, "<script>x</script>")
	require.Contains(t, html, "&lt;script&gt;")
}

func TestRenderHTML_FractionalPrice(t *testing.T) {
	html := renderHTML(t, viewer.Snapshot{
		Status:   viewer.StatusLoaded,
		Products: []viewer.Product{{ID: 1, Name: "Cable", Price: 19.99}},
	})

	require.Contains(t, html, "Price: $19.99")
}

func TestRenderText(t *testing.T) {
	cases := []struct {
		name  string
		snap  viewer.Snapshot
		want  []string
		cards int
	}{
		{
			name:  "loading",
			snap:  viewer.Snapshot{Status: viewer.StatusLoading},
			want:  []string{"Product List", "Loading products..."},
			cards: 0,
		},
		{
			name:  "failed",
			snap:  viewer.Snapshot{Status: viewer.StatusFailed, Err: viewer.FetchFailedMessage},
			want:  []string{"Error: Failed to fetch products. Is the backend running on port 5000?"},
			cards: 0,
		},
		{
			name:  "loaded",
			snap:  viewer.Snapshot{Status: viewer.StatusLoaded, Products: fixture},
			want:  []string{"- Laptop\n  Price: $1200", "- Mouse\n  Price: $25", "- Keyboard\n  Price: $45"},
			cards: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, viewer.RenderText(&buf, tc.snap))

			out := buf.String()
			for _, w := range tc.want {
				require.Contains(t, out, w)
			}
			require.Equal(t, tc.cards, strings.Count(out, "[ Buy Now ]"))
		})
	}
}
