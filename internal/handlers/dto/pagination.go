package dto

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// Rótulos dos links de navegação
const (
	PreviousLabel = "&laquo; Previous"
	NextLabel     = "Next &raquo;"
	EllipsisLabel = "..."
)

// linksOnEachSide é a quantidade de páginas mostradas ao redor da atual
const linksOnEachSide = 3

// PageLink é um link de navegação. URL nulo indica link desabilitado.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// PageMeta descreve a página atual
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// Paginated é a coleção enviada às páginas de listagem
type Paginated[T any] struct {
	Data  []T        `json:"data"`
	Links []PageLink `json:"links"`
	Meta  PageMeta   `json:"meta"`
}

// ListQueryFromRequest lê search, page e limit da query string
func ListQueryFromRequest(c *gin.Context, defaultLimit, maxLimit int) repositories.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	return repositories.ListQuery{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}.Normalize(defaultLimit, maxLimit)
}

// NewPaginated monta a coleção com os links da página. Todos os parâmetros
// da query, exceto page, são preservados nos links.
func NewPaginated[T, E any](c *gin.Context, page repositories.Page[E], data []T) Paginated[T] {
	if data == nil {
		data = []T{}
	}

	return Paginated[T]{
		Data:  data,
		Links: BuildLinks(c.Request.URL, page.CurrentPage, page.LastPage()),
		Meta: PageMeta{
			CurrentPage: page.CurrentPage,
			LastPage:    page.LastPage(),
			PerPage:     page.PerPage,
			Total:       page.Total,
		},
	}
}

// BuildLinks gera "anterior", as páginas (com reticências quando são
// muitas) e "próxima"
func BuildLinks(current *url.URL, currentPage, lastPage int) []PageLink {
	pageURL := func(page int) *string {
		query := current.Query()
		query.Set("page", strconv.Itoa(page))
		u := url.URL{Path: current.Path, RawQuery: query.Encode()}
		s := u.String()
		return &s
	}

	links := make([]PageLink, 0, lastPage+2)

	previous := PageLink{Label: PreviousLabel}
	if currentPage > 1 {
		previous.URL = pageURL(currentPage - 1)
	}
	links = append(links, previous)

	for _, page := range pageWindow(currentPage, lastPage) {
		if page == 0 {
			links = append(links, PageLink{Label: EllipsisLabel})
			continue
		}
		links = append(links, PageLink{
			URL:    pageURL(page),
			Label:  strconv.Itoa(page),
			Active: page == currentPage,
		})
	}

	next := PageLink{Label: NextLabel}
	if currentPage < lastPage {
		next.URL = pageURL(currentPage + 1)
	}
	return append(links, next)
}

// pageWindow retorna os números de página exibidos; 0 marca reticências
func pageWindow(currentPage, lastPage int) []int {
	window := linksOnEachSide + 4

	if lastPage < window*2+2 {
		return pageRange(1, lastPage)
	}

	switch {
	case currentPage <= window:
		out := pageRange(1, window+linksOnEachSide)
		out = append(out, 0)
		return append(out, lastPage-1, lastPage)
	case currentPage > lastPage-window:
		out := []int{1, 2, 0}
		return append(out, pageRange(lastPage-(window+linksOnEachSide-1), lastPage)...)
	default:
		out := []int{1, 2, 0}
		out = append(out, pageRange(currentPage-linksOnEachSide, currentPage+linksOnEachSide)...)
		out = append(out, 0)
		return append(out, lastPage-1, lastPage)
	}
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
