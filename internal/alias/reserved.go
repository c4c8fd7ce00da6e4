package alias

// reservedPaths are identifiers that collide with system routes or common
// conventions and must never be assigned to a shortened URL. Matching is
// exact and case-sensitive. This set is the single source of truth; do not
// duplicate entries at call sites.
var reservedPaths = map[string]struct{}{
	"":        {},
	"shorten": {},
	"stats":   {},
	"docs":    {},
	"ping":    {},

	// Authentication
	"login":    {},
	"register": {},
	"auth":     {},
	"signin":   {},
	"signup":   {},
	"logout":   {},

	// API and Next.js
	"api":     {},
	"_next":   {},
	"_vercel": {},
	"vercel":  {},

	// Static assets
	"favicon":     {},
	"favicon.ico": {},
	"robots":      {},
	"robots.txt":  {},
	"sitemap":     {},
	"sitemap.xml": {},

	// Main user pages
	"home":      {},
	"dashboard": {},
	"profile":   {},
	"settings":  {},
	"admin":     {},
	"user":      {},
	"account":   {},

	// Institutional pages
	"about":   {},
	"contact": {},
	"help":    {},
	"support": {},
	"terms":   {},
	"privacy": {},
	"policy":  {},

	// System resources
	"public": {},
	"static": {},
	"assets": {},
	"images": {},
	"img":    {},
	"css":    {},
	"js":     {},
	"fonts":  {},

	// Error pages
	"404":       {},
	"500":       {},
	"error":     {},
	"not-found": {},

	// Webhooks and integrations
	"webhook":  {},
	"webhooks": {},
	"callback": {},
	"oauth":    {},

	// Monitoring and system
	"health":     {},
	"status":     {},
	"metrics":    {},
	"monitoring": {},

	// Other common paths
	"www":   {},
	"mail":  {},
	"email": {},
	"ftp":   {},
	"blog":  {},
	"news":  {},
	"shop":  {},
	"store": {},

	// Admin area
	"administrator": {},
	"manage":        {},
	"management":    {},
	"console":       {},

	// Additional resources
	"download": {},
	"upload":   {},
	"file":     {},
	"files":    {},
	"media":    {},
}

// IsReserved reports whether id collides with a reserved system path.
func IsReserved(id string) bool {
	_, ok := reservedPaths[id]
	return ok
}
