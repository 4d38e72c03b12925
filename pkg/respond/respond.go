package respond

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// Result wraps a command result as {"result": data}.
func Result(w http.ResponseWriter, r *http.Request, data interface{}) {
	JSON(w, r, http.StatusOK, map[string]interface{}{"result": data})
}

func Error(w http.ResponseWriter, r *http.Request, code int, errCode, message string) {
	JSON(w, r, code, map[string]string{"error": message, "code": errCode})
}
