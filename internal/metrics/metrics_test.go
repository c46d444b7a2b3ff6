package metrics

import "testing"

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 201: "2xx", 404: "4xx", 500: "5xx", 0: "unknown", 700: "unknown"}
	for status, expected := range cases {
		if got := StatusClass(status); got != expected {
			t.Errorf("Expected %d to be %s, got %s", status, expected, got)
		}
	}
}
