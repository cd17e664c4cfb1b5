package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "decoder":
		return decoderTemplate, nil
	case "sim":
		return simTemplate, nil
	default:
		return "", fmt.Errorf("unknown template kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o644)
}

const decoderTemplate = `# prtdcd decoder configuration
source = "frames.txt"
mode = "sim"            # sim | serial
format = "text"         # text | json
show_rotor = false
max_line_bytes = 65536
# metrics_addr = "127.0.0.1:9108"
# log_level = "info"
`

// simTemplate decodes to "HOLC YORLD".
const simTemplate = `L,H
L,O
L,L
M,2
L,A
L,Space
L,W
M,-2
L,O
L,R
L,L
L,D
`
