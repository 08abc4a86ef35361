package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"tb7stream/models"
	"tb7stream/services/identity"
)

// configStore is the slice of the identity service the form needs.
type configStore interface {
	Resolve(w http.ResponseWriter, r *http.Request) models.Identity
	StoredCredentials(ctx context.Context, id models.Identity) (models.Credentials, error)
	SaveCredentials(ctx context.Context, id models.Identity, creds models.Credentials) error
}

var _ configStore = (*identity.Service)(nil)

// html/template escapes every value interpolated into the form, which
// covers the credential fields round-tripping through the markup.
var configureTemplate = template.Must(template.New("configure").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>TB7 Premium - Configuration</title>
  </head>
  <body style="font-family: sans-serif; max-width: 480px; margin: 20px auto;">
    <h2>TB7 Premium configuration</h2>
    <form method="POST">
      <label>TB7 login:</label><br>
      <input name="login" value="{{.Login}}" style="width: 100%;" /><br><br>

      <label>TB7 password:</label><br>
      <input name="password" type="password" value="{{.Password}}" style="width: 100%;" /><br><br>

      <label>Identity mode:</label><br>
      <select name="mode" style="width: 100%;">
        <option value="cookie"{{if eq .Mode "cookie"}} selected{{end}}>Cookie (recommended)</option>
        <option value="ip"{{if eq .Mode "ip"}} selected{{end}}>IP (fallback)</option>
      </select><br><br>

      <button type="submit" style="padding: 8px 16px;">Save</button>
    </form>
  </body>
</html>
`))

const configureSavedPage = `<h3>Saved. You can return to Stremio.</h3>`

// Configure serves the account configuration form: GET renders the stored
// record back into the form, POST persists the submitted one.
func Configure(ids configStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ids.Resolve(w, r)

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "bad form", http.StatusBadRequest)
				return
			}
			creds := models.Credentials{
				Login:    r.PostForm.Get("login"),
				Password: r.PostForm.Get("password"),
				Mode:     models.NormalizeMode(r.PostForm.Get("mode")),
			}
			if err := ids.SaveCredentials(r.Context(), caller, creds); err != nil {
				log.Printf("[handlers] save configuration: %v", err)
				http.Error(w, "storage unavailable", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(configureSavedPage))
			return
		}

		creds, err := ids.StoredCredentials(r.Context(), caller)
		if err != nil {
			log.Printf("[handlers] load configuration: %v", err)
			// Render an empty form rather than failing the page.
			creds = models.Credentials{}
		}
		creds.Mode = models.NormalizeMode(creds.Mode)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := configureTemplate.Execute(w, creds); err != nil {
			log.Printf("[handlers] render configuration: %v", err)
		}
	}
}
