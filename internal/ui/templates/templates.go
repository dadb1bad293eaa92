// Package templates renders the storefront page and the HTML fragments
// patched into it. Every function is pure: it turns data into a
// templ.Component and touches nothing else.
package templates

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"io"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"storefront/internal/models"
	"storefront/internal/ui"
)

var (
	fragments = template.Must(template.New("fragments").Parse(fragmentsSource))
	page      = template.Must(template.New("page").Parse(pageSource))
)

// Container ids the fragments patch into.
const (
	FlashDealsGridID         = "flashDealsGrid"
	SearchResultsContainerID = "searchResultsContainer"
	AdminBodyID              = "adminBody"
)

// ToString renders c into a string, ready to be sent as an element patch.
func ToString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fragments.ExecuteTemplate(w, name, data)
	})
}

type wishData struct {
	DOMID  string
	URL    string
	Active bool
}

type cardData struct {
	Product  models.Product
	Discount int
	Price    string
	Original string
	BuyURL   string
	Wish     wishData
}

type gridData struct {
	ID    string
	Cards []cardData
}

type categoryData struct {
	Name  string
	Icon  string
	Count string
	URL   string
}

type countData struct {
	Count int
	Query string
}

type dashboardData struct {
	TotalClicks string
	Revenue     string
}

// WishlistScopes lists the containers that render product cards. A
// product can appear in each of them at once.
var WishlistScopes = []string{FlashDealsGridID, SearchResultsContainerID}

// WishlistDOMID is the element id of a product's wishlist button inside
// the container scope. The product id is hex encoded, so distinct ids
// never share an element id.
func WishlistDOMID(scope, productID string) string {
	return "wish-" + scope + "-" + hex.EncodeToString([]byte(productID))
}

func wish(scope, productID string, active bool) wishData {
	return wishData{
		DOMID:  WishlistDOMID(scope, productID),
		URL:    "/sse/wishlist?" + url.Values{"id": {productID}}.Encode(),
		Active: active,
	}
}

func card(scope string, p models.Product, wished bool) cardData {
	c := cardData{
		Product:  p,
		Discount: p.Discount(),
		Price:    models.FormatPrice(p.Price),
		BuyURL:   "/sse/buy?" + url.Values{"id": {p.ID}, "link": {p.AffiliateLink}}.Encode(),
		Wish:     wish(scope, p.ID, wished),
	}
	if p.HasOriginalPrice() {
		c.Original = models.FormatPrice(*p.OriginalPrice)
	}
	return c
}

func cards(scope string, products []models.Product, wishlist map[string]bool) []cardData {
	out := make([]cardData, 0, len(products))
	for _, p := range products {
		out = append(out, card(scope, p, wishlist[p.ID]))
	}
	return out
}

// ProductCard renders one product card as it appears inside scope.
func ProductCard(scope string, p models.Product, wished bool) templ.Component {
	return fragment("productCard", card(scope, p, wished))
}

// ProductGrid renders a grid container with the given id, replacing
// whatever the container held before.
func ProductGrid(id string, products []models.Product, wishlist map[string]bool) templ.Component {
	return fragment("productGrid", gridData{ID: id, Cards: cards(id, products, wishlist)})
}

func WishlistButton(scope, productID string, active bool) templ.Component {
	return fragment("wishlistButton", wish(scope, productID, active))
}

func CategoryGrid(categories []models.Category) templ.Component {
	data := make([]categoryData, 0, len(categories))
	for _, c := range categories {
		data = append(data, categoryData{
			Name:  c.Name,
			Icon:  c.Icon,
			Count: humanize.Comma(c.Count),
			URL:   "/sse/category?" + url.Values{"name": {c.Name}}.Encode(),
		})
	}
	return fragment("categoryGrid", data)
}

// SearchResults renders the results container. An empty result set gets
// the empty-state block instead of an empty grid.
func SearchResults(products []models.Product, wishlist map[string]bool) templ.Component {
	return fragment("searchResults", gridData{ID: SearchResultsContainerID, Cards: cards(SearchResultsContainerID, products, wishlist)})
}

func SearchCount(query string, count int) templ.Component {
	return fragment("searchCount", countData{Count: count, Query: query})
}

func Spinner(containerID string) templ.Component {
	return fragment("spinner", containerID)
}

func DealsError() templ.Component {
	return fragment("dealsError", nil)
}

func SearchError() templ.Component {
	return fragment("searchError", nil)
}

func StatProducts(n int) templ.Component {
	return fragment("statProducts", n)
}

func Toast(message string) templ.Component {
	return fragment("toast", message)
}

func AdminLogin() templ.Component {
	return fragment("adminLogin", nil)
}

func AdminDashboard(summary models.AnalyticsSummary) templ.Component {
	return fragment("adminDashboard", dashboardData{
		TotalClicks: strconv.FormatInt(summary.TotalClicks, 10),
		Revenue:     models.FormatPrice(summary.Revenue),
	})
}

func AdminError() templ.Component {
	return fragment("adminError", nil)
}

func Seconds(v int) templ.Component {
	return fragment("seconds", v)
}

// Particle is one decorative background element.
type Particle struct {
	Left  string
	Delay string
}

// NewParticles places n particles at random horizontal positions with
// random animation delays of up to 25 seconds.
func NewParticles(n int, rng *rand.Rand) []Particle {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			Left:  strconv.FormatFloat(rng.Float64()*100, 'f', 2, 64),
			Delay: strconv.FormatFloat(rng.Float64()*25, 'f', 2, 64),
		}
	}
	return particles
}

type PageData struct {
	SiteName        string
	ScrollThreshold int
	Particles       []Particle
	State           ui.State
}

type pageData struct {
	SiteName        string
	ScrollThreshold int
	Particles       []Particle
	Signals         string
}

// Page renders the full storefront shell. Data containers start empty
// and are filled by the initial load request the page issues itself.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(struct {
			ui.Signals
			Scrolled   bool   `json:"scrolled"`
			AdminEmail string `json:"adminEmail"`
		}{Signals: data.State.Signals()})
		if err != nil {
			return err
		}
		return page.Execute(w, pageData{
			SiteName:        data.SiteName,
			ScrollThreshold: data.ScrollThreshold,
			Particles:       data.Particles,
			Signals:         string(signals),
		})
	})
}
