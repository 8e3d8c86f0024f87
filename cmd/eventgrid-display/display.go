/*
Copyright 2026 The Knative Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"knative.dev/eventgrid/pkg/eventgrid/models"
)

/*
Example Output:

☁️  Microsoft.Storage.BlobCreated
Envelope,
  id: 831e1650-001e-001b-66ab-eeb76e069631
  topic: /subscriptions/.../storageAccounts/my-storage-account
  subject: /blobServices/default/containers/images/blobs/cat.png
  eventTime: 2026-01-02T03:04:05Z
  dataVersion: 1.0
Data (models.StorageBlobCreatedEventData),
  {
    "api": "PutBlockList",
    ...
  }
*/

// display renders a resolved event in a human-readable format.
func display(event models.Envelope, dataType string, data interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "☁️  %s\nEnvelope,\n", event.EventTypeName())
	switch e := event.(type) {
	case *models.EventGridEvent:
		line(&b, "id", e.ID)
		line(&b, "topic", e.Topic)
		line(&b, "subject", e.Subject)
		line(&b, "eventTime", formatTime(e.EventTime))
		line(&b, "dataVersion", e.DataVersion)
		line(&b, "metadataVersion", e.MetadataVersion)
	case *models.CloudEvent:
		line(&b, "specversion", e.SpecVersion)
		line(&b, "id", e.ID)
		line(&b, "source", e.Source)
		line(&b, "subject", e.Subject)
		line(&b, "time", formatTime(e.Time))
		line(&b, "datacontenttype", e.DataContentType)
		line(&b, "dataschema", e.DataSchema)
		if e.Len() > 0 {
			b.WriteString("Extensions,\n")
			e.Range(func(name string, value interface{}) bool {
				fmt.Fprintf(&b, "  %s: %v\n", name, value)
				return true
			})
		}
	}
	if data == nil {
		return b.String()
	}
	if dataType == "" {
		b.WriteString("Data,\n")
	} else {
		fmt.Fprintf(&b, "Data (%s),\n", dataType)
	}
	writeData(&b, data)
	return b.String()
}

func displayCustom(event map[string]interface{}) string {
	var b strings.Builder
	b.WriteString("☁️  custom event\n")
	writeData(&b, event)
	return b.String()
}

func line(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, "  %s: %s\n", name, value)
	}
}

func writeData(b *strings.Builder, data interface{}) {
	if raw, ok := data.([]byte); ok {
		fmt.Fprintf(b, "  %d bytes\n", len(raw))
		return
	}
	out, err := json.MarshalIndent(data, "  ", "  ")
	if err != nil {
		fmt.Fprintf(b, "  %v\n", data)
		return
	}
	fmt.Fprintf(b, "  %s\n", out)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
