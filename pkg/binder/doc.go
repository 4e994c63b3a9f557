// Package binder turns HTTP request data into form input.
//
// Values flattens a request into url.Values. Requests without a body
// (GET, HEAD, DELETE, OPTIONS or an empty body) use the query string;
// otherwise the body is decoded by media type:
//
//   - application/x-www-form-urlencoded
//   - multipart/form-data, where uploaded files contribute their sanitized
//     file names for keys without a text value
//   - application/json, a single object of scalars and arrays of scalars
//
// Body values replace query values with the same key. Bind feeds the result
// into a form.Form, which takes every value for multiple fields ("tags[]")
// and the first one otherwise.
//
// # Usage
//
//	f, _ := kit.Build(def)
//	if err := binder.Bind(r, f); err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	ok := f.Validate()
//
// # Error Handling
//
// Failures wrap one of ErrMissingContentType, ErrUnsupportedMediaType,
// ErrFailedToParseForm or ErrFailedToParseJSON.
package binder
