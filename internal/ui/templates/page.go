package templates

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteName}}</title>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"></script>
</head>
<body data-signals="{{.Signals}}">
<header id="header" class="header" data-class:scrolled="$scrolled" data-on:scroll__window="$scrolled = window.scrollY > {{.ScrollThreshold}}">
<a class="logo" data-on:click="@post('/sse/navigate-home')"><i class="fas fa-bolt"></i> {{.SiteName}}</a>
<div class="search-box">
<input id="searchInput" type="search" placeholder="Search deals or categories" data-bind:search data-on:keydown="evt.key === 'Enter' && @post('/sse/search')">
<button class="search-btn" data-on:click="@post('/sse/search')"><i class="fas fa-search"></i></button>
</div>
<nav class="nav">
<a data-on:click="@post('/sse/navigate-home')">Home</a>
<a data-on:click="@get('/sse/flash')">Flash Deals</a>
<a data-on:click="@get('/sse/categories')">Categories</a>
<a data-on:click="@get('/sse/check')">Status</a>
</nav>
</header>

<div id="particlesContainer" class="particles">{{range .Particles}}<div class="particle" style="left: {{.Left}}%; animation-delay: {{.Delay}}s"></div>{{end}}</div>

<main>
<section id="heroSection" class="hero fade-in" data-show="$view === 'home'" data-on-intersect="el.classList.add('visible')">
<h1>Today's best deals, hand picked</h1>
<div class="hero-stats"><div class="stat"><span id="statProducts">0+</span><span class="stat-label">Live deals</span></div></div>
<div class="countdown" data-init="@get('/sse/countdown')">
<span id="hours">--</span>:<span id="minutes">--</span>:<span id="seconds">--</span>
</div>
</section>

<section id="flashSection" class="section fade-in" data-show="$view === 'home'" data-on-intersect="el.classList.add('visible')">
<h2 class="section-title"><i class="fas fa-bolt"></i> Flash Deals</h2>
<div id="flashDealsGrid" class="product-grid"><p class="loading-text">Loading deals...</p></div>
</section>

<section id="categoriesSection" class="section fade-in" data-show="$view === 'home'" data-on-intersect="el.classList.add('visible')">
<h2 class="section-title">Shop by Category</h2>
<div id="categoryGrid" class="category-grid"></div>
</section>

<section id="searchResults" class="section" data-show="$view === 'search'" style="display: none">
<div class="search-header">
<button class="btn-back" data-on:click="@post('/sse/navigate-home')"><i class="fas fa-arrow-left"></i> Back</button>
<p id="searchCount" class="search-count"></p>
</div>
<div id="searchResultsContainer"></div>
</section>
</main>

<div id="adminOverlay" class="admin-overlay" data-class:active="$adminOpen" data-on:click="evt.target === el && @post('/sse/admin/close')" data-on:keydown__window="evt.key === 'Escape' && $adminOpen && @post('/sse/admin/close')">
<div class="admin-panel">
<button class="admin-close" data-on:click="@post('/sse/admin/close')"><i class="fas fa-times"></i></button>
<div id="adminBody"></div>
</div>
</div>

<div id="toast" class="toast"><i class="fas fa-check-circle"></i><span id="toastText"></span></div>
<div data-init="@get('/sse/home')"></div>
</body>
</html>
`
