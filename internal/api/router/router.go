package router

import (
	"database/sql"
	"net/http"

	"bookstore-api/internal/api/handlers/books"
	"bookstore-api/internal/api/middlewares"
	"bookstore-api/internal/auth"
	storebooks "bookstore-api/internal/store/books"

	"github.com/redis/go-redis/v9"
)

func Router(db *sql.DB, rdb *redis.Client) http.Handler {
	mux := http.NewServeMux()
	pageCfg := storebooks.DefaultPageConfig()

	// Books: every route, reads included, sits behind a valid access token
	mux.Handle("GET /books", middlewares.RequireAuth(db, books.List(db)))
	mux.Handle("GET /books/offset", middlewares.RequireAuth(db, books.ListOffset(db, pageCfg)))
	mux.Handle("GET /books/cursor", middlewares.RequireAuth(db, books.ListCursor(db, pageCfg)))
	mux.Handle("GET /books/isbn/{isbn}", middlewares.RequireAuth(db, books.Get(db)))
	mux.Handle("GET /books/isbn/{isbn}/cover", middlewares.RequireAuth(db, books.GetCover(db)))
	mux.Handle("POST /books", middlewares.RequireAuth(db, books.Create(db)))
	mux.Handle("PATCH /books/isbn/{isbn}/rating", middlewares.RequireAuth(db, books.Rate(db)))
	mux.Handle("DELETE /books/isbn/{isbn}", middlewares.RequireAuth(db, books.Delete(db)))
	mux.Handle("DELETE /books/author/{author}", middlewares.RequireAuth(db, books.DeleteByAuthor(db)))
	mux.Handle("POST /books/isbn/{isbn}/cover", middlewares.RequireAuth(db, books.UploadCover(db)))

	// Auth
	ah := auth.New(auth.NewSQLStore(db), rdb)
	mux.HandleFunc("POST /auth/register", ah.Register)
	mux.HandleFunc("POST /auth/login", ah.Login)
	mux.HandleFunc("POST /auth/refresh", ah.Refresh)
	mux.HandleFunc("POST /auth/logout", ah.Logout)
	mux.Handle("POST /auth/logout-all", middlewares.RequireAuth(db, http.HandlerFunc(ah.LogoutAll)))
	mux.Handle("PATCH /auth/password", middlewares.RequireAuth(db, http.HandlerFunc(ah.ChangePassword)))
	mux.Handle("DELETE /auth/account", middlewares.RequireAuth(db, http.HandlerFunc(ah.DeleteAccount)))
	mux.Handle("GET /auth/me", middlewares.RequireAuth(db, http.HandlerFunc(ah.Me)))

	return mux
}
