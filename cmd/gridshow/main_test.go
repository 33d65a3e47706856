package main

import (
	"reflect"
	"testing"
)

func TestParseScroll(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"150", []int{150}, false},
		{"150, -20,300", []int{150, -20, 300}, false},
		{"1,x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseScroll(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseScroll(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseScroll(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
