package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "prediction",
			objectType:  "trends",
			identifier:  "2026",
			paramsKey:   nil,
			expectedKey: "lgspredict:prediction:trends:2026",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "prediction",
			objectType:  "trends",
			identifier:  "2026",
			paramsKey:   []string{},
			expectedKey: "lgspredict:prediction:trends:2026",
		},
		{
			name:        "with one paramsKey",
			serviceName: "prediction",
			objectType:  "statistics",
			identifier:  "categories",
			paramsKey:   []string{"top30"},
			expectedKey: "lgspredict:prediction:statistics:categories:top30",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "corpus",
			objectType:  "samples",
			identifier:  "Paragrafta Anlam",
			paramsKey:   []string{"count5", "seed42"},
			expectedKey: "lgspredict:corpus:samples:Paragrafta Anlam:count5_seed42",
		},
		{
			name:        "with paramsKey containing special characters",
			serviceName: "service",
			objectType:  "type",
			identifier:  "id",
			paramsKey:   []string{"param-1", "param_2"},
			expectedKey: "lgspredict:service:type:id:param-1_param_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
