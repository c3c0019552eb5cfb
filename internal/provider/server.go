package provider

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"findanything/internal/catalog"
)

// DefaultTopK is the number of records returned per query
const DefaultTopK = 6

// Server is a demo Results Provider backed by the static catalog
type Server struct {
	products []catalog.Product
	topK     int
	logger   *zap.Logger
}

// NewServer creates the demo provider
func NewServer(products []catalog.Product, topK int, logger *zap.Logger) *Server {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{products: products, topK: topK, logger: logger.Named("server")}
}

// Handler returns the HTTP routes with permissive CORS
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /query", s.handleQuery)
	return cors(mux)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the catalog search server!"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query *string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "request body must be a JSON object"})
		return
	}
	if req.Query == nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "field required: query"})
		return
	}

	s.logger.Info("executing query", zap.String("query", *req.Query))
	s.writeJSON(w, http.StatusOK, s.Search(*req.Query))
}

// Record is one result row; every field is a string on the wire
type Record struct {
	Name      string `json:"name"`
	Img       string `json:"img"`
	Price     string `json:"price"`
	Brand     string `json:"brand"`
	AvgRating string `json:"avg_rating"`
}

// Search ranks the catalog by query-term overlap; ties keep catalog order
func (s *Server) Search(query string) []Record {
	terms := tokenize(query)

	type scored struct {
		product catalog.Product
		score   int
	}
	ranked := make([]scored, len(s.products))
	for i, p := range s.products {
		vocab := make(map[string]bool)
		for _, t := range tokenize(p.Name + " " + p.Brand + " " + p.Category) {
			vocab[t] = true
		}
		score := 0
		for _, t := range terms {
			if vocab[t] {
				score++
			}
		}
		ranked[i] = scored{product: p, score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := s.topK
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]Record, 0, n)
	for _, r := range ranked[:n] {
		price := strings.TrimPrefix(r.product.Price, "$")
		if d, err := r.product.PriceValue(); err == nil {
			price = d.StringFixed(2)
		}
		out = append(out, Record{
			Name:      r.product.Name,
			Img:       r.product.Image,
			Price:     price,
			Brand:     r.product.Brand,
			AvgRating: strconv.FormatFloat(r.product.Rating, 'f', -1, 64),
		})
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("writing response", zap.Error(err))
	}
}
