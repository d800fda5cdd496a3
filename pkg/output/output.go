/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */

// Package output renders a decrypted wallet payload.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hokaccha/go-prettyjson"
	"github.com/jedib0t/go-pretty/v6/table"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/notapipeline/openwallet/pkg/types"
)

// Write renders payload to w in the format named by opts.
func Write(w io.Writer, payload []byte, opts types.OutputOptions) error {
	switch opts.Format {
	case types.OutputJSON, "":
		return writeJSON(w, payload, opts.Color)
	case types.OutputRaw:
		return writeRaw(w, payload)
	case types.OutputTable:
		return writeTable(w, payload)
	case types.OutputSecret:
		return writeSecret(w, payload, opts.Secret)
	}
	return opts.Format.Valid()
}

func writeRaw(w io.Writer, payload []byte) (err error) {
	if _, err = w.Write(payload); err != nil {
		return
	}
	_, err = io.WriteString(w, "\n")
	return
}

// writeJSON pretty prints payload. Anything that does not parse as JSON is
// written as it is.
func writeJSON(w io.Writer, payload []byte, color bool) error {
	if !json.Valid(payload) {
		return writeRaw(w, payload)
	}

	formatter := prettyjson.NewFormatter()
	formatter.DisabledColor = !color
	formatter.Indent = 4
	formatter.Newline = "\n"
	formatter.StringMaxLength = 0

	s, err := formatter.Format(payload)
	if err != nil {
		return writeRaw(w, payload)
	}
	return writeRaw(w, s)
}

// writeTable lists the top level keys of a JSON object, one per row.
func writeTable(w io.Writer, payload []byte) error {
	var (
		fields map[string]json.RawMessage
		keys   []string
	)

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return fmt.Errorf("table output needs a JSON object payload")
	}

	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, cell(fields[k])})
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// cell shows strings unquoted and everything else as compact JSON.
func cell(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// writeSecret wraps payload in a Kubernetes Secret manifest.
func writeSecret(w io.Writer, payload []byte, s types.SecretCmd) error {
	if s.Name == "" {
		return fmt.Errorf("secret output requires a secret name")
	}

	var key string = s.Key
	if key == "" {
		key = types.DefaultSecretKey
	}

	secret := corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.Name,
			Namespace: s.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			key: payload,
		},
	}

	b, err := yaml.Marshal(secret)
	if err != nil {
		return fmt.Errorf("unable to render secret %s: %w", s.Name, err)
	}
	_, err = w.Write(b)
	return err
}
