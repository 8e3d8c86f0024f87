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

package registry

import (
	"sort"

	"knative.dev/eventgrid/pkg/eventgrid/models"
)

// system is built once and never written afterwards.
var system = buildSystem(map[string]*Shape{
	// KEEP THIS SORTED BY THE NAME OF THE PUBLISHING SERVICE

	// Container Registry
	models.ContainerRegistryImagePushedEvent:  ShapeOf[models.ContainerRegistryImagePushedEventData](),
	models.ContainerRegistryImageDeletedEvent: ShapeOf[models.ContainerRegistryImageDeletedEventData](),

	// Event Grid
	models.EventGridSubscriptionValidationEvent: ShapeOf[models.SubscriptionValidationEventData](),
	models.EventGridSubscriptionDeletedEvent:    ShapeOf[models.SubscriptionDeletedEventData](),

	// Event Hub
	models.EventHubCaptureFileCreatedEvent: ShapeOf[models.EventHubCaptureFileCreatedEventData](),

	// Media Services
	models.MediaJobOutputProcessingEvent: ShapeOf[models.MediaJobOutputProcessingEventData](),

	// Resource Manager
	models.ResourceWriteSuccessEvent:  ShapeOf[models.ResourceWriteSuccessData](),
	models.ResourceWriteFailureEvent:  ShapeOf[models.ResourceWriteFailureData](),
	models.ResourceWriteCancelEvent:   ShapeOf[models.ResourceWriteCancelData](),
	models.ResourceDeleteSuccessEvent: ShapeOf[models.ResourceDeleteSuccessData](),
	models.ResourceDeleteFailureEvent: ShapeOf[models.ResourceDeleteFailureData](),
	models.ResourceDeleteCancelEvent:  ShapeOf[models.ResourceDeleteCancelData](),
	models.ResourceActionSuccessEvent: ShapeOf[models.ResourceActionSuccessData](),
	models.ResourceActionFailureEvent: ShapeOf[models.ResourceActionFailureData](),
	models.ResourceActionCancelEvent:  ShapeOf[models.ResourceActionCancelData](),

	// Storage
	models.StorageBlobCreatedEvent:      ShapeOf[models.StorageBlobCreatedEventData](),
	models.StorageBlobDeletedEvent:      ShapeOf[models.StorageBlobDeletedEventData](),
	models.StorageBlobRenamedEvent:      ShapeOf[models.StorageBlobRenamedEventData](),
	models.StorageDirectoryCreatedEvent: ShapeOf[models.StorageDirectoryCreatedEventData](),
	models.StorageDirectoryDeletedEvent: ShapeOf[models.StorageDirectoryDeletedEventData](),
	models.StorageDirectoryRenamedEvent: ShapeOf[models.StorageDirectoryRenamedEventData](),
})

type systemTable struct {
	shapes map[string]*Shape
	types  []string
}

func buildSystem(in map[string]*Shape) systemTable {
	t := systemTable{shapes: make(map[string]*Shape, len(in))}
	for eventType, shape := range in {
		t.shapes[normalize(eventType)] = shape
		t.types = append(t.types, eventType)
	}
	sort.Strings(t.types)
	return t
}

// System returns the built-in shape for eventType.
func System(eventType string) (*Shape, bool) {
	shape, ok := system.shapes[normalize(eventType)]
	return shape, ok
}

// SystemEventTypes returns the event types with a built-in mapping, sorted.
func SystemEventTypes() []string {
	out := make([]string, len(system.types))
	copy(out, system.types)
	return out
}
