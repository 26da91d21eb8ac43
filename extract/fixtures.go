package extract

// Placeholder extraction output per document kind, standing in for a real
// parser until one is wired up.
var cannedText = map[string]string{
	KindPDF: `# Sample PDF Content Extraction

## Introduction
This is a mock extraction of content from a PDF document. In a real deployment this would contain the actual text content extracted from the uploaded PDF file.

## Key Concepts
- Concept 1: An important concept that students should understand
- Concept 2: Another fundamental principle that builds upon the first
- Concept 3: Advanced topic that requires understanding of previous concepts

## Important Definitions
1. Term A: Definition of the first important term
2. Term B: Definition of the second important term
3. Term C: Definition of the third important term

## Examples and Applications
- Example 1: Practical application of Concept 1
- Example 2: How Concept 2 relates to everyday situations
- Example 3: Advanced application combining multiple concepts

## Summary
The main takeaways include understanding the fundamental principles, recognizing key terminology, and being able to apply concepts in practical situations.`,

	KindDOCX: `# Word Document Content

## Document Overview
This document contains important study material that has been extracted from a Microsoft Word document.

## Main Topics Covered
### Topic 1: Fundamentals
This section covers the basic principles that form the foundation of the subject matter.

### Topic 2: Intermediate Concepts
Building upon the fundamentals, these concepts introduce more complex ideas and relationships.

### Topic 3: Advanced Applications
The most complex topics that require mastery of previous concepts.

## Key Points to Remember
- Point 1: Essential information for understanding
- Point 2: Critical details that are often tested
- Point 3: Important connections between different concepts

## Study Tips
1. Focus on understanding the fundamentals first
2. Practice with examples and applications
3. Review key definitions regularly`,

	KindPPTX: `# Presentation Content

## Slide 1: Introduction
Welcome to this presentation on key study topics.

## Slide 2: Learning Objectives
By the end of this presentation, you should be able to:
- Understand the main concepts
- Apply knowledge in practical situations
- Identify key relationships between topics

## Slide 3: Key Concept 1
Definition: Important concept that forms the foundation
Examples: Real-world applications and use cases
Practice: How to apply this concept

## Slide 4: Key Concept 2
Definition: Building upon the first concept
Examples: More complex scenarios
Practice: Advanced applications

## Slide 5: Summary
- Review of main points
- Key takeaways
- Next steps for further study`,
}
