package swagger_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/summit/internal/adapters/http/swagger"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a router with the docs routes", t, func() {
		r := chi.NewRouter()
		swagger.Register(r)

		convey.Convey("Then it should handle /openapi.yaml route", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
			convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("And it should handle /api-docs route", func() {
			req := httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc@2.1.5")
			convey.So(w.Body.String(), convey.ShouldNotContainSubstring, "latest")
		})
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given the embedded document", t, func() {
		doc, err := swagger.Parse()

		convey.Convey("Then it describes every planner route", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.Info.Title, convey.ShouldEqual, "Summit Planner API")
			for _, path := range []string{
				"/healthz", "/stats", "/v1/registry", "/v1/catalog/days", "/v1/catalog/days/{day}",
				"/v1/speakers", "/v1/expo", "/v1/itinerary", "/v1/itinerary/batch",
				"/v1/sessions/score", "/v1/community", "/v1/community/{id}",
			} {
				convey.So(doc.Paths, convey.ShouldContainKey, path)
			}
			convey.So(doc.Paths["/v1/community"], convey.ShouldContainKey, "post")
		})
	})
}
