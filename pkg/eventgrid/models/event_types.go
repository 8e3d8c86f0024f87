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

package models

// Event types published by first party services. Keep sorted by publishing service.
const (
	// Container Registry
	ContainerRegistryImagePushedEvent  = "Microsoft.ContainerRegistry.ImagePushed"
	ContainerRegistryImageDeletedEvent = "Microsoft.ContainerRegistry.ImageDeleted"

	// Event Grid
	EventGridSubscriptionValidationEvent = "Microsoft.EventGrid.SubscriptionValidationEvent"
	EventGridSubscriptionDeletedEvent    = "Microsoft.EventGrid.SubscriptionDeletedEvent"

	// Event Hub
	EventHubCaptureFileCreatedEvent = "Microsoft.EventHub.CaptureFileCreated"

	// Media Services
	MediaJobOutputProcessingEvent = "Microsoft.Media.JobOutputProcessing"

	// Resource Manager
	ResourceWriteSuccessEvent  = "Microsoft.Resources.ResourceWriteSuccess"
	ResourceWriteFailureEvent  = "Microsoft.Resources.ResourceWriteFailure"
	ResourceWriteCancelEvent   = "Microsoft.Resources.ResourceWriteCancel"
	ResourceDeleteSuccessEvent = "Microsoft.Resources.ResourceDeleteSuccess"
	ResourceDeleteFailureEvent = "Microsoft.Resources.ResourceDeleteFailure"
	ResourceDeleteCancelEvent  = "Microsoft.Resources.ResourceDeleteCancel"
	ResourceActionSuccessEvent = "Microsoft.Resources.ResourceActionSuccess"
	ResourceActionFailureEvent = "Microsoft.Resources.ResourceActionFailure"
	ResourceActionCancelEvent  = "Microsoft.Resources.ResourceActionCancel"

	// Storage
	StorageBlobCreatedEvent      = "Microsoft.Storage.BlobCreated"
	StorageBlobDeletedEvent      = "Microsoft.Storage.BlobDeleted"
	StorageBlobRenamedEvent      = "Microsoft.Storage.BlobRenamed"
	StorageDirectoryCreatedEvent = "Microsoft.Storage.DirectoryCreated"
	StorageDirectoryDeletedEvent = "Microsoft.Storage.DirectoryDeleted"
	StorageDirectoryRenamedEvent = "Microsoft.Storage.DirectoryRenamed"
)
