package grpcapi

import "testing"

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := jsonCodec{}
	in := &SubmitCreationRequestRequest{Name: "lobby", Program: "java", Args: []string{"-jar", "paper.jar"}}

	data, err := codec.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out SubmitCreationRequestRequest
	if err := codec.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Name != in.Name || out.Program != in.Program || len(out.Args) != len(in.Args) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestJSONCodecName(t *testing.T) {
	if (jsonCodec{}).Name() != "json" {
		t.Fatalf("expected codec name 'json', got %q", (jsonCodec{}).Name())
	}
}
