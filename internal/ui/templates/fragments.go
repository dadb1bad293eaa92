package templates

const fragmentsSource = `
{{define "wishlistButton"}}<button id="{{.DOMID}}" class="product-wishlist{{if .Active}} active{{end}}" data-on:click="@post('{{.URL}}')"><i class="{{if .Active}}fas{{else}}far{{end}} fa-heart"></i></button>{{end}}

{{define "productCard"}}<div class="product-card fade-in visible">
<div class="product-image-wrap">
<div class="product-badges">{{if .Product.IsFlash}}<span class="badge badge-flash"><i class="fas fa-bolt"></i> Flash</span>{{end}}{{if gt .Discount 0}}<span class="badge badge-discount">-{{.Discount}}%</span>{{end}}</div>
{{template "wishlistButton" .Wish}}
<img src="{{.Product.Image}}" alt="{{.Product.Name}}" class="product-image" loading="lazy">
</div>
<div class="product-info">
<div class="product-category">{{.Product.Category}}</div>
<h3 class="product-title">{{.Product.Name}}</h3>
<div class="product-price-row"><span class="price-current">{{.Price}}</span>{{if .Original}}<span class="price-original">{{.Original}}</span>{{end}}</div>
<div class="product-actions"><button class="btn-buy" data-on:click="@post('{{.BuyURL}}')"><i class="fas fa-shopping-bag"></i> Buy Now</button></div>
</div>
</div>{{end}}

{{define "productGrid"}}<div id="{{.ID}}" class="product-grid">{{range .Cards}}{{template "productCard" .}}{{end}}</div>{{end}}

{{define "categoryGrid"}}<div id="categoryGrid" class="category-grid">{{range .}}<div class="category-card" data-on:click="@get('{{.URL}}')">
<div class="category-icon"><i class="fas {{.Icon}}"></i></div>
<div class="category-name">{{.Name}}</div>
<div class="category-count">{{.Count}} items</div>
</div>{{end}}</div>{{end}}

{{define "searchCount"}}<p id="searchCount" class="search-count">Found {{.Count}} products for "{{.Query}}"</p>{{end}}

{{define "searchResults"}}<div id="searchResultsContainer">{{if .Cards}}<div class="product-grid">{{range .Cards}}{{template "productCard" .}}{{end}}</div>{{else}}<div class="empty-state"><i class="fas fa-search empty-icon"></i><h3>No products found</h3></div>{{end}}</div>{{end}}

{{define "spinner"}}<div id="{{.}}"><div class="loading-spinner"></div></div>{{end}}

{{define "dealsError"}}<div id="flashDealsGrid" class="product-grid"><p class="loading-text error">Server not running? Start app.py (the catalog API)</p></div>{{end}}

{{define "searchError"}}<div id="searchResultsContainer"><p class="error-text">Error connecting to the catalog server</p></div>{{end}}

{{define "statProducts"}}<span id="statProducts">{{.}}+</span>{{end}}

{{define "toast"}}<div id="toast" class="toast show"><i class="fas fa-check-circle"></i><span id="toastText">{{.}}</span></div>{{end}}

{{define "adminLogin"}}<div id="adminBody"><div class="admin-login">
<div class="admin-login-icon"><i class="fas fa-user-shield"></i></div>
<h2>Admin</h2>
<div class="form-group"><label class="form-label" for="adminEmail">Email</label><input type="email" class="form-input" id="adminEmail" data-bind:admin-email data-on:keydown="evt.key === 'Enter' && @post('/sse/admin/login')"></div>
<button class="btn btn-primary btn-block" data-on:click="@post('/sse/admin/login')">Login via API</button>
</div></div>{{end}}

{{define "adminDashboard"}}<div id="adminBody"><div class="analytics-grid">
<div class="analytics-card"><div class="analytics-value">{{.TotalClicks}}</div><div class="analytics-label">Total Clicks</div></div>
<div class="analytics-card"><div class="analytics-value">{{.Revenue}}</div><div class="analytics-label">Revenue</div></div>
</div></div>{{end}}

{{define "adminError"}}<div id="adminBody"><p class="error-text">Could not load analytics from the catalog API</p></div>{{end}}

{{define "seconds"}}<span id="seconds">{{.}}</span>{{end}}
`
