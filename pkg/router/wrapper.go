package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/ripple-lab/backend/pkg/errorx"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		err := func() error {
			if req.Method != method {
				return errorx.New(errorx.BadRequest, "Not supported method %s", req.Method)
			}

			var request Request
			if err := bindRequest(req, method, &request); err != nil {
				return errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			for _, m := range r.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return err
				}
				ctx = newCtx
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				return err
			}

			for _, m := range r.afters {
				newCtx, err := m(ctx)
				if err != nil {
					return err
				}
				ctx = newCtx
			}

			return writeJson(w, newResponse(resp))
		}()

		if err != nil {
			if werr := writeJson(w, newErrorResponse(err)); werr != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", werr)
			}
		}

		for _, closer := range r.closers {
			closer(ctx, err)
		}
	}
}

// bindRequest fills the request object from the query string for GET requests
// or from the JSON body for everything else. Query binding follows the json
// tags of the request struct.
func bindRequest(r *http.Request, method string, req any) error {
	if method != http.MethodGet {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, req)
	}

	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}

		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int32, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}

func writeJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
