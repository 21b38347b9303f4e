package di_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/0xalexb/hjarta-loader/di"
	"github.com/0xalexb/hjarta-loader/docserver"
	"github.com/0xalexb/hjarta-loader/listener"
	yamlmapper "github.com/0xalexb/hjarta-loader/mapper/yaml"

	"go.uber.org/fx"
)

// Slip is the layout of a printed slip.
// It implements the Defaulter and Validator hooks from the document package.
type Slip struct {
	Name  string `json:"name"  yaml:"name"`
	Width int    `json:"width" yaml:"width"`
	Lines []struct {
		Text string `json:"text" yaml:"text"`
	} `json:"lines" yaml:"lines"`
	Copies int `json:"copies" yaml:"copies"`
}

// SetDefaults prints a single copy unless told otherwise.
func (s *Slip) SetDefaults() bool {
	if s.Copies == 0 {
		s.Copies = 1

		return true
	}

	return false
}

// Validate rejects slips without a printable width.
func (s *Slip) Validate() error {
	if s.Width <= 0 {
		return errors.New("width must be positive")
	}

	return nil
}

// Example_documentEndpoint loads a document from disk, serves it over HTTP
// and reads it back as JSON.
func Example_documentEndpoint() {
	var handler *docserver.Handler[Slip]

	app := di.NewApp(
		di.WithLogLevel("error"),
		di.WithModules(
			di.DocumentModule[Slip]("slip", "testdata/template.yaml", yamlmapper.New()),
			docserver.Module[Slip]("templates"),
			fx.Populate(&handler),
		),
		di.WithHTTPListener("templates", listener.WithAddress("127.0.0.1:0")),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("%s: width %d, %d lines, %d copy\n",
		handler.Current().Name, handler.Current().Width, len(handler.Current().Lines), handler.Current().Copies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fmt.Println(rec.Code, rec.Header().Get("Content-Type"))
	// Output:
	// Till Slip: width 32, 2 lines, 1 copy
	// 200 application/json
}
