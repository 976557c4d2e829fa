package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gdwatch/console/internal/domain"
)

func TestEncode_RcloneInstanceFanOut(t *testing.T) {
	cfg := domain.Config{}
	cfg.Rclone.Instances = []domain.RcloneInstance{
		{Host: "h1", Endpoint: "/e1"},
		{Host: "h2", Endpoint: "/e2"},
	}
	cfg.Rclone.PathMappings = []domain.MappingRule{
		{Regex: "X"},
		{Regex: "Y"},
	}

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(w.Rclone) != 2 {
		t.Fatalf("Expected 2 wire instances, got %d", len(w.Rclone))
	}
	if w.Rclone[0].Name != "instance_0" || w.Rclone[1].Name != "instance_1" {
		t.Errorf("Expected generated names instance_0/instance_1, got %q/%q",
			w.Rclone[0].Name, w.Rclone[1].Name)
	}
	for i, inst := range w.Rclone {
		if len(inst.Mapping) != 2 {
			t.Fatalf("Expected instance %d to carry full rule list, got %d rules", i, len(inst.Mapping))
		}
		if inst.Mapping[0].Regex != "X" || inst.Mapping[1].Regex != "Y" {
			t.Errorf("Expected instance %d rules [X Y], got %+v", i, inst.Mapping)
		}
	}
}

func TestEncode_MalformedTemplate(t *testing.T) {
	cfg := domain.Config{}
	cfg.Symedia.BodyTemplate = `{not json`

	_, err := Encode(cfg)
	if !errors.Is(err, domain.ErrMalformedTemplate) {
		t.Errorf("Expected ErrMalformedTemplate, got %v", err)
	}
}

func TestEncode_EmptyTemplatePlaceholder(t *testing.T) {
	w, err := Encode(domain.Config{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(w.Symedia.BodyTemplate) != "{}" {
		t.Errorf("Expected empty object placeholder, got %s", w.Symedia.BodyTemplate)
	}
}

func TestEncode_TemplateRoundTrip(t *testing.T) {
	cfg := domain.Config{}
	cfg.Symedia.BodyTemplate = `{"a": 1}`

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var got, want any
	if err := json.Unmarshal(w.Symedia.BodyTemplate, &got); err != nil {
		t.Fatalf("wire template is not valid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"a":1}`), &want); err != nil {
		t.Fatal(err)
	}

	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("Expected %s, got %s", wantJSON, gotJSON)
	}

	back := Decode(w)
	var reDecoded any
	if err := json.Unmarshal([]byte(back.Symedia.BodyTemplate), &reDecoded); err != nil {
		t.Fatalf("decoded template is not valid JSON: %v", err)
	}
}

func TestEncode_RestrictToDomainAlwaysFalse(t *testing.T) {
	cfg := domain.Config{}
	cfg.Server.TLS = domain.TLSConfig{Enabled: true, CertPath: "/c", KeyPath: "/k"}

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if w.Server.SSL == nil {
		t.Fatal("Expected ssl block to be emitted")
	}
	if w.Server.SSL.RestrictToDomain {
		t.Error("Expected restrict_to_domain always false")
	}
	if !w.Server.SSL.Enabled || w.Server.SSL.CertPath != "/c" || w.Server.SSL.KeyPath != "/k" {
		t.Errorf("Expected TLS fields carried over, got %+v", w.Server.SSL)
	}
}

func TestEncode_CleanupZeroValuesBackfilled(t *testing.T) {
	cfg := domain.Config{}
	cfg.Advanced.LogCleanup = domain.LogCleanup{Enabled: true}

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if w.Advanced.LogRetentionDays == nil || *w.Advanced.LogRetentionDays != 7 {
		t.Errorf("Expected retention backfilled to 7, got %v", w.Advanced.LogRetentionDays)
	}
	if w.Advanced.LogCleanupCron != "0 0 3 * * ?" {
		t.Errorf("Expected cron backfilled, got %q", w.Advanced.LogCleanupCron)
	}
}

func TestEncode_OAuthNested(t *testing.T) {
	cfg := domain.Config{}
	cfg.OAuth = domain.OAuthConfig{ClientID: "id", ClientSecret: "sec", RedirectURI: "uri"}

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if w.OAuthConfig == nil || w.OAuthConfig.ClientID != "id" {
		t.Errorf("Expected oauth_config nesting, got %+v", w.OAuthConfig)
	}
}

func TestEncode_SymediaMappingsToTopLevel(t *testing.T) {
	cfg := domain.Config{}
	cfg.Symedia.PathMappings = []domain.MappingRule{{Regex: "from", Replacement: "to"}}

	w, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(w.PathMapping) != 1 || w.PathMapping[0].Regex != "from" {
		t.Errorf("Expected symedia rules emitted as top-level path_mapping, got %+v", w.PathMapping)
	}
}

func TestRoundTrip_DecodeEncodeDecode(t *testing.T) {
	on := true
	w := Wire{}
	w.Auth.Username = "admin"
	w.Auth.Password = "pw"
	w.Google.PersonalDriveName = "My Drive"
	w.Advanced.LogCleanupEnabled = &on
	w.Rclone = []WireRcloneInstance{
		{Name: "keep-me", Host: "h1", Mapping: []WireMapping{{Regex: "A", Replacement: "B"}}},
	}
	w.Symedia = &WireSymedia{Host: "s", BodyTemplate: json.RawMessage(`{"k":"v"}`)}

	first := Decode(w)
	encoded, err := Encode(first)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second := Decode(encoded)

	// Wire-only fields are regenerated, everything canonical survives.
	if second.Auth != first.Auth {
		t.Errorf("Expected auth preserved, got %+v", second.Auth)
	}
	if second.Google.PersonalDriveName != "My Drive" {
		t.Errorf("Expected drive name preserved, got %q", second.Google.PersonalDriveName)
	}
	if len(second.Rclone.PathMappings) != 1 || second.Rclone.PathMappings[0] != first.Rclone.PathMappings[0] {
		t.Errorf("Expected shared rules preserved, got %+v", second.Rclone.PathMappings)
	}
	if second.Symedia.BodyTemplate != first.Symedia.BodyTemplate {
		t.Errorf("Expected template preserved, got %q", second.Symedia.BodyTemplate)
	}
	if encoded.Rclone[0].Name != "instance_0" {
		t.Errorf("Expected wire-only name regenerated, got %q", encoded.Rclone[0].Name)
	}
}
